package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo adaptador PostgreSQL de documentos NK/XK.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// CreateBatch persiste los documentos de un lote de importación.
func (r *DocumentRepo) CreateBatch(ctx context.Context, docs []entity.Document) error {
	if len(docs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO documents (id, operation, date, warehouse, counterparty, responsible, total_volume_m3, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range docs {
		batch.Queue(query,
			d.ID, d.Operation, d.Date, d.Warehouse, d.Counterparty, d.Responsible,
			d.TotalVolumeM3, d.TotalAmount, d.CreatedAt,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range docs {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("documento duplicado: %w", domain.ErrDuplicate)
			}
			return fmt.Errorf("create document: %w", err)
		}
	}
	return nil
}

// ListIDs devuelve todos los ids de documento ya asignados.
func (r *DocumentRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("list document ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
