package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotecraft/quotecraft/internal/adapters/http/dto"
	"github.com/quotecraft/quotecraft/internal/app"
	"github.com/quotecraft/quotecraft/internal/domain"
)

// SessionHandler exposes the quotation workflow over HTTP. Session-bound
// AI operations respond with the uniform action envelope; lifecycle
// endpoints use plain resource responses.
type SessionHandler struct {
	workflow *app.Workflow
	actions  *app.QuotationService
	logger   *slog.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(workflow *app.Workflow, actions *app.QuotationService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		workflow: workflow,
		actions:  actions,
		logger:   logger,
	}
}

// Create handles POST /api/v1/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.workflow.CreateSession(c.Request.Context())

	c.JSON(http.StatusCreated, dto.NewSessionResponse(sess))
}

// Get handles GET /api/v1/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.workflow.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(sess))
}

// Delete handles DELETE /api/v1/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.workflow.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Generate handles POST /api/v1/sessions/:id/generate.
func (h *SessionHandler) Generate(c *gin.Context) {
	var req domain.QuotationRequest
	if !bindRequest(c, &req) {
		return
	}

	result := h.actions.GenerateQuotation(c.Request.Context(), c.Param("id"), req)
	respondWithResult(c, result)
}

// AdjustTone handles POST /api/v1/sessions/:id/tone.
func (h *SessionHandler) AdjustTone(c *gin.Context) {
	var req dto.AdjustToneRequest
	if !bindRequest(c, &req) {
		return
	}

	tone, err := domain.ParseTone(req.Tone)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result := h.actions.AdjustTone(c.Request.Context(), c.Param("id"), tone)
	respondWithResult(c, result)
}

// SuggestAddOns handles POST /api/v1/sessions/:id/addons.
func (h *SessionHandler) SuggestAddOns(c *gin.Context) {
	result := h.actions.SuggestAddOns(c.Request.Context(), c.Param("id"))
	respondWithResult(c, result)
}

// UpdateDocument handles PUT /api/v1/sessions/:id/document.
func (h *SessionHandler) UpdateDocument(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if !bindRequest(c, &req) {
		return
	}

	err := h.workflow.UpdateDocument(c.Request.Context(), c.Param("id"), req.Document)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export handles POST /api/v1/sessions/:id/export. The response body is
// the rendered PDF itself.
func (h *SessionHandler) Export(c *gin.Context) {
	result, err := h.workflow.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}

// SendEmail handles POST /api/v1/sessions/:id/email.
func (h *SessionHandler) SendEmail(c *gin.Context) {
	var req dto.EmailRequest
	if !bindRequest(c, &req) {
		return
	}

	result := h.actions.SendEmail(c.Request.Context(), c.Param("id"), req.To)
	respondWithResult(c, result)
}

// RegisterSessionRoutes registers session routes on the given router group.
func (h *SessionHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	sessions.POST("", h.Create)
	sessions.GET("/:id", h.Get)
	sessions.DELETE("/:id", h.Delete)
	sessions.POST("/:id/generate", h.Generate)
	sessions.POST("/:id/tone", h.AdjustTone)
	sessions.POST("/:id/addons", h.SuggestAddOns)
	sessions.PUT("/:id/document", h.UpdateDocument)
	sessions.POST("/:id/export", h.Export)
	sessions.POST("/:id/email", h.SendEmail)
}

// bindRequest binds and validates the JSON body, writing the error
// response itself when binding fails.
func bindRequest(c *gin.Context, v any) bool {
	err := dto.BindAndValidate(c, v)
	if err == nil {
		return true
	}

	if dto.IsValidationError(err) {
		dto.HandleValidationErrors(c, dto.ValidationErrors(err))
		return false
	}

	dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid request body")

	return false
}

// respondWithResult writes an action envelope. Failures keep the
// envelope's stable message in the body; the HTTP status comes from the
// underlying cause.
func respondWithResult[T any](c *gin.Context, result domain.Result[T]) {
	if result.Success() {
		c.JSON(http.StatusOK, result)
		return
	}

	status, _ := dto.MapDomainError(result.Cause())
	c.JSON(status, result)
}
