package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
	"github.com/tu-usuario/costeo-pro/internal/domain/normalize"
	"github.com/tu-usuario/costeo-pro/internal/domain/repository"
)

// Asegura que DatasetRepo implementa repository.DatasetRepository.
var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// Versión actual del sobre persistido. Las versiones anteriores se leen igual:
// el pipeline de normalización absorbe cualquier forma histórica.
const envelopeVersion = 3

// DatasetRepo persiste el conjunto de datos completo como un documento JSONB
// versionado en una fila única. El volumen (un negocio, decenas de registros)
// no justifica un esquema relacional; el documento entero mantiene atómica
// cada operación de guardado.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador de persistencia del dataset.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

type envelope struct {
	Version int             `json:"version"`
	SavedAt string          `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// Migrate crea la tabla si no existe.
func (r *DatasetRepo) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id         INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			document   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("migrate datasets: %w", err)
	}
	return nil
}

// Load lee el documento y lo pasa SIEMPRE por normalización: lo que sale de
// aquí cumple todos los invariantes sin importar qué versión lo escribió.
// Sin fila todavía, devuelve un dataset vacío normalizado.
func (r *DatasetRepo) Load(ctx context.Context) (*entity.Dataset, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM datasets WHERE id = 1`).Scan(&doc)
	if err != nil {
		if isNoRows(err) {
			ds := normalize.Dataset(normalize.RawDataset{})
			return &ds, nil
		}
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	data := env.Data
	if data == nil {
		// Documentos pre-sobre: el JSON ES el dataset.
		data = doc
	}
	var raw normalize.RawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	ds := normalize.Dataset(raw)
	return &ds, nil
}

// Save serializa el dataset dentro del sobre versionado y hace upsert de la
// fila única.
func (r *DatasetRepo) Save(ctx context.Context, ds *entity.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	doc, err := json.Marshal(envelope{
		Version: envelopeVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Data:    data,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO datasets (id, document, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		doc,
	)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
