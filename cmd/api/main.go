package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/costeo-pro/internal/application/auth"
	"github.com/tu-usuario/costeo-pro/internal/application/importexport"
	"github.com/tu-usuario/costeo-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/costeo-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/costeo-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/costeo-pro/internal/interfaces/http"
	"github.com/tu-usuario/costeo-pro/pkg/config"
	"github.com/tu-usuario/costeo-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	datasetRepo := postgres.NewDatasetRepository(pool)
	if err := datasetRepo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	catalogUC := usecase.NewCatalogUseCase(datasetRepo)
	productionUC := usecase.NewProductionUseCase(datasetRepo, nil)
	reportUC := usecase.NewReportUseCase(datasetRepo, nil)
	importExportUC := importexport.NewUseCase(datasetRepo)
	authUC := auth.NewAuthUseCase(auth.Config{
		Username:     cfg.Auth.Username,
		PasswordHash: cfg.Auth.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		JWTExpMin:    cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
	})
	pdfGen := infrapdf.NewMarotoReportGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		ProductionUC: productionUC,
		ReportUC:     reportUC,
		ImportExport: importExportUC,
		AuthUC:       authUC,
		PDFGen:       pdfGen,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
