package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
)

// ImportUseCase orquesta la importación: carga los snapshots de ids existentes,
// concilia el lote con Reconcile y delega la escritura en los repositorios.
type ImportUseCase struct {
	eventRepo repository.MovementEventRepository
	docRepo   repository.DocumentRepository
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(eventRepo repository.MovementEventRepository, docRepo repository.DocumentRepository) *ImportUseCase {
	return &ImportUseCase{eventRepo: eventRepo, docRepo: docRepo}
}

// ImportMovements concilia y persiste un lote de filas. Las filas inválidas no
// abortan el lote: quedan en Rejected con su motivo. Solo errores de
// infraestructura o de agotamiento de secuencia fallan la operación completa.
func (uc *ImportUseCase) ImportMovements(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error) {
	packageIDs, err := uc.eventRepo.ListPackageIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar ids de paquete: %w", err)
	}
	documentIDs, err := uc.docRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar ids de documento: %w", err)
	}

	reconciled, err := Reconcile(rows, packageIDs, documentIDs, time.Now())
	if err != nil {
		return nil, err
	}

	if len(reconciled.Documents) > 0 {
		if err := uc.docRepo.CreateBatch(ctx, reconciled.Documents); err != nil {
			return nil, fmt.Errorf("persistir documentos: %w", err)
		}
	}
	if len(reconciled.Events) > 0 {
		if err := uc.eventRepo.AppendBatch(ctx, reconciled.Events); err != nil {
			return nil, fmt.Errorf("persistir eventos: %w", err)
		}
	}

	result := &dto.ImportResult{
		BatchID:       uuid.New().String(),
		RowsReceived:  len(rows),
		EventsCreated: len(reconciled.Events),
		Rejected:      reconciled.Rejected,
		Documents:     make([]dto.DocumentDTO, 0, len(reconciled.Documents)),
	}

	eventsPerDoc := make(map[string]int, len(reconciled.Documents))
	for _, e := range reconciled.Events {
		eventsPerDoc[e.DocumentID]++
	}
	for _, d := range reconciled.Documents {
		result.Documents = append(result.Documents, dto.DocumentDTO{
			ID:            d.ID,
			Operation:     d.Operation,
			Date:          d.Date.Format("2006-01-02"),
			Warehouse:     d.Warehouse,
			Counterparty:  d.Counterparty,
			Responsible:   d.Responsible,
			Events:        eventsPerDoc[d.ID],
			TotalVolumeM3: d.TotalVolumeM3,
			TotalAmount:   d.TotalAmount,
		})
	}
	return result, nil
}
