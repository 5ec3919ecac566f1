package repository

import (
	"context"

	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// DatasetRepository puerto de persistencia del conjunto de datos completo.
// El adaptador es responsable de pasar lo cargado por el pipeline de
// normalización antes de devolverlo: los casos de uso reciben siempre un
// Dataset que satisface todos los invariantes.
type DatasetRepository interface {
	Load(ctx context.Context) (*entity.Dataset, error)
	Save(ctx context.Context, ds *entity.Dataset) error
}
