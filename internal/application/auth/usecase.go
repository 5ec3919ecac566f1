package auth

import (
	"github.com/tu-usuario/costeo-pro/internal/application/dto"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Config credenciales del operador único más los parámetros del token.
// PasswordHash es un hash bcrypt generado fuera de línea; la aplicación nunca
// guarda la contraseña en claro.
type Config struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	JWTExpMin    int
	Issuer       string
}

// AuthUseCase login del operador único. No hay registro: las credenciales
// viven en la configuración.
type AuthUseCase struct {
	cfg Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(cfg Config) *AuthUseCase {
	return &AuthUseCase{cfg: cfg}
}

// Login verifica usuario/password contra la configuración y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username != uc.cfg.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.JWTSecret, in.Username, uc.cfg.Issuer, uc.cfg.JWTExpMin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
