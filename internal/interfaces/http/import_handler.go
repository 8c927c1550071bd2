package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/application/importer"
	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/excel"
	"github.com/jhoicas/Maderera-api/pkg/logger"
)

// ImportHandler maneja la importación de movimientos desde la plantilla XLSX.
type ImportHandler struct {
	uc  *importer.ImportUseCase
	log *logger.Logger
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.ImportUseCase, log *logger.Logger) *ImportHandler {
	return &ImportHandler{uc: uc, log: log}
}

// ImportMovements godoc
// @Summary      Importar movimientos desde la plantilla XLSX
// @Description  Lee la plantilla, agrupa las filas en documentos sintéticos,
//
//	asigna ids de paquete/documento y registra los eventos. Las filas
//	inválidas no abortan el lote: se devuelven en "rejected".
//
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro .xlsx con la plantilla de movimientos"
// @Success      201  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/imports/movements [post]
func (h *ImportHandler) ImportMovements(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un archivo en el campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	rows, readRejects, err := excel.ReadMovements(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TEMPLATE", Message: err.Error()})
	}

	result, err := h.uc.ImportMovements(c.Context(), rows)
	if err != nil {
		if errors.Is(err, domain.ErrSequenceExhausted) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEQUENCE_EXHAUSTED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// Los rechazos del lector (celdas ilegibles) y los del conciliador
	// (reglas de negocio) van juntos en la respuesta.
	result.Rejected = append(readRejects, result.Rejected...)
	result.RowsReceived += len(readRejects)

	h.log.Info().
		Str("batch_id", result.BatchID).
		Int("rows", result.RowsReceived).
		Int("events", result.EventsCreated).
		Int("documents", len(result.Documents)).
		Int("rejected", len(result.Rejected)).
		Msg("lote de movimientos importado")

	return c.Status(fiber.StatusCreated).JSON(result)
}
