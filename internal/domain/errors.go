package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidWindow     = errors.New("ventana de reporte inválida: fecha inicial posterior a la final")
	ErrSequenceExhausted = errors.New("secuencia diaria agotada: más de 999 consecutivos para el mismo prefijo y día")
)
