package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
)

// Querier subconjunto común de pgxpool.Pool y pgx.Tx; permite usar los
// repositorios con el pool o dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var _ repository.MovementEventRepository = (*MovementEventRepo)(nil)

// MovementEventRepo adaptador PostgreSQL del log de movimientos. El log es
// append-only: este repositorio solo inserta y lee, nunca actualiza ni borra.
type MovementEventRepo struct {
	q Querier
}

// NewMovementEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementEventRepository(q Querier) *MovementEventRepo {
	return &MovementEventRepo{q: q}
}

const movementEventColumns = `
	id, date, operation, package_id, product_group, quality_grade,
	thickness_mm, width_mm, length_mm, piece_count, volume_m3,
	warehouse, document_id, created_at`

// ListAll devuelve el log completo en orden de fecha ascendente (los empates
// conservan el orden de inserción vía created_at, id).
func (r *MovementEventRepo) ListAll(ctx context.Context) ([]entity.MovementEvent, error) {
	query := `SELECT ` + movementEventColumns + `
		FROM movement_events
		ORDER BY date ASC, created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movement events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByWarehouse devuelve el log de una bodega en orden de fecha ascendente.
func (r *MovementEventRepo) ListByWarehouse(ctx context.Context, warehouse string) ([]entity.MovementEvent, error) {
	query := `SELECT ` + movementEventColumns + `
		FROM movement_events
		WHERE warehouse = $1
		ORDER BY date ASC, created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, warehouse)
	if err != nil {
		return nil, fmt.Errorf("list movement events by warehouse: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListPackageIDs devuelve todos los ids de paquete ya asignados.
func (r *MovementEventRepo) ListPackageIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT package_id FROM movement_events`)
	if err != nil {
		return nil, fmt.Errorf("list package ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan package id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AppendBatch inserta los eventos del lote en un solo round-trip.
func (r *MovementEventRepo) AppendBatch(ctx context.Context, events []entity.MovementEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO movement_events (` + movementEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		batch.Queue(query,
			e.ID, e.Timestamp, e.Operation, e.PackageID, e.ProductGroup, e.QualityGrade,
			e.ThicknessMm, e.WidthMm, e.LengthMm, e.PieceCount, e.VolumeM3,
			e.Warehouse, e.DocumentID, e.CreatedAt,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("append movement event: %w", err)
		}
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]entity.MovementEvent, error) {
	var list []entity.MovementEvent
	for rows.Next() {
		var e entity.MovementEvent
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Operation, &e.PackageID, &e.ProductGroup, &e.QualityGrade,
			&e.ThicknessMm, &e.WidthMm, &e.LengthMm, &e.PieceCount, &e.VolumeM3,
			&e.Warehouse, &e.DocumentID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
