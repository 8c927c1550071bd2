package repository

import (
	"context"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

// MovementEventRepository define el puerto de persistencia del log de
// movimientos. El log es append-only: no hay Update ni Delete; el motor de
// reportes solo lee snapshots.
type MovementEventRepository interface {
	// ListAll devuelve el log completo en orden de fecha ascendente.
	ListAll(ctx context.Context) ([]entity.MovementEvent, error)
	// ListByWarehouse devuelve el log de una bodega en orden de fecha ascendente.
	ListByWarehouse(ctx context.Context, warehouse string) ([]entity.MovementEvent, error)
	// ListPackageIDs devuelve todos los ids de paquete ya asignados.
	ListPackageIDs(ctx context.Context) ([]string, error)
	// AppendBatch agrega eventos al log de forma atómica.
	AppendBatch(ctx context.Context, events []entity.MovementEvent) error
}

// DocumentRepository define el puerto de persistencia de documentos NK/XK.
type DocumentRepository interface {
	// CreateBatch persiste los documentos de un lote de importación.
	CreateBatch(ctx context.Context, docs []entity.Document) error
	// ListIDs devuelve todos los ids de documento ya asignados.
	ListIDs(ctx context.Context) ([]string, error)
}
