package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimlens/internal/export"
	"claimlens/internal/ingest"
	"claimlens/internal/service"
)

// EvaluationHandler handles claim evaluation endpoints.
type EvaluationHandler struct {
	evalService service.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evalService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalService: evalService}
}

// Evaluate handles POST /api/v1/evaluations
//
// The request is multipart/form-data: a "narrative" field, zero or more
// "documents" file parts, and zero or more "policy_file_ids" fields naming
// stored library files. An X-Reasoner-Key header overrides the configured
// reasoning service credential for this request only.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "multipart form expected")
		return
	}

	narrative := c.PostForm("narrative")

	var uploads []ingest.Source
	for _, header := range form.File["documents"] {
		uploads = append(uploads, ingest.FromMultipart(header))
	}

	var policyIDs []uuid.UUID
	for _, idStr := range form.Value["policy_file_ids"] {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid policy file ID: "+idStr)
			return
		}
		policyIDs = append(policyIDs, id)
	}

	eval, err := h.evalService.Evaluate(c.Request.Context(), service.EvaluateInput{
		Narrative:     narrative,
		Uploads:       uploads,
		PolicyFileIDs: policyIDs,
		Credential:    c.GetHeader("X-Reasoner-Key"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, eval)
}

// List handles GET /api/v1/evaluations
func (h *EvaluationHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	evals, total, err := h.evalService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, evals, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/evaluations/:id
func (h *EvaluationHandler) GetByID(c *gin.Context) {
	evalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid evaluation ID")
		return
	}

	eval, err := h.evalService.GetByID(c.Request.Context(), evalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, eval)
}

// Delete handles DELETE /api/v1/evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	evalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid evaluation ID")
		return
	}

	if err := h.evalService.Delete(c.Request.Context(), evalID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "evaluation deleted"})
}

// ExportCSV handles GET /api/v1/evaluations/export/csv
func (h *EvaluationHandler) ExportCSV(c *gin.Context) {
	evals, err := h.evalService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("evaluations", "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteEvaluations(evals); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/evaluations/export/xlsx
func (h *EvaluationHandler) ExportXLSX(c *gin.Context) {
	evals, err := h.evalService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("evaluations", "xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteXLSX(c.Writer, evals); err != nil {
		HandleError(c, err)
	}
}
