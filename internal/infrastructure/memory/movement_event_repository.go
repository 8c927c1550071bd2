// Package memory ofrece repositorios en memoria del log de movimientos y de
// documentos: modo demo sin base de datos y dobles de prueba de los casos de
// uso. Mantienen la misma semántica append-only que el adaptador PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
)

var (
	_ repository.MovementEventRepository = (*MovementEventRepo)(nil)
	_ repository.DocumentRepository      = (*DocumentRepo)(nil)
)

// MovementEventRepo log de movimientos en memoria, seguro para concurrencia.
type MovementEventRepo struct {
	mu     sync.RWMutex
	events []entity.MovementEvent
}

// NewMovementEventRepository construye el repositorio, opcionalmente sembrado.
func NewMovementEventRepository(seed ...entity.MovementEvent) *MovementEventRepo {
	r := &MovementEventRepo{}
	r.events = append(r.events, seed...)
	return r
}

// ListAll devuelve una copia del log en orden de fecha ascendente.
func (r *MovementEventRepo) ListAll(_ context.Context) ([]entity.MovementEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.events), nil
}

// ListByWarehouse devuelve una copia del log de una bodega.
func (r *MovementEventRepo) ListByWarehouse(_ context.Context, warehouse string) ([]entity.MovementEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []entity.MovementEvent
	for _, e := range r.events {
		if e.Warehouse == warehouse {
			filtered = append(filtered, e)
		}
	}
	return sortedCopy(filtered), nil
}

// ListPackageIDs devuelve los ids de paquete ya asignados, sin duplicados.
func (r *MovementEventRepo) ListPackageIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.events))
	var ids []string
	for _, e := range r.events {
		if !seen[e.PackageID] {
			seen[e.PackageID] = true
			ids = append(ids, e.PackageID)
		}
	}
	return ids, nil
}

// AppendBatch agrega eventos al log. Append-only: no hay Update ni Delete.
func (r *MovementEventRepo) AppendBatch(_ context.Context, events []entity.MovementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func sortedCopy(events []entity.MovementEvent) []entity.MovementEvent {
	out := make([]entity.MovementEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// DocumentRepo documentos NK/XK en memoria.
type DocumentRepo struct {
	mu   sync.RWMutex
	docs []entity.Document
}

// NewDocumentRepository construye el repositorio.
func NewDocumentRepository() *DocumentRepo {
	return &DocumentRepo{}
}

// CreateBatch persiste los documentos de un lote.
func (r *DocumentRepo) CreateBatch(_ context.Context, docs []entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, docs...)
	return nil
}

// ListIDs devuelve los ids de documento ya asignados.
func (r *DocumentRepo) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.docs))
	for _, d := range r.docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
