package domain

import "errors"

// Errores de dominio (sin dependencias externas). Ojo: los motores de cálculo
// no los usan para datos numéricos fuera de dominio (ahí se propaga NaN);
// estos errores son para los casos de uso y la capa HTTP.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrReportLocked      = errors.New("el reporte mensual está bloqueado")
	ErrReportNotFrozen   = errors.New("el reporte no tiene totales congelados")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
