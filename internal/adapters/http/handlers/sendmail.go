package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quotecraft/quotecraft/internal/adapters/http/dto"
	"github.com/quotecraft/quotecraft/internal/app"
	"github.com/quotecraft/quotecraft/internal/domain"
)

// SendMailHandler serves the sessionless POST /api/send-email endpoint.
// Its request and response shapes are a compatibility contract with web
// clients that render the PDF themselves, so it does not use the
// standard error envelope.
type SendMailHandler struct {
	actions *app.QuotationService
	logger  *slog.Logger
}

// NewSendMailHandler creates the sessionless email handler.
func NewSendMailHandler(actions *app.QuotationService, logger *slog.Logger) *SendMailHandler {
	return &SendMailHandler{
		actions: actions,
		logger:  logger,
	}
}

type sendMailError struct {
	Error string `json:"error"`
}

type sendMailSuccess struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendEmail handles POST /api/send-email.
func (h *SendMailHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, sendMailError{Error: "Missing required fields"})
		return
	}

	if strings.TrimSpace(req.To) == "" || req.QuotationData == nil || req.PDFBase64 == "" {
		c.JSON(http.StatusBadRequest, sendMailError{Error: "Missing required fields"})
		return
	}

	result := h.actions.DispatchEmail(c.Request.Context(), app.SendEmailRequest{
		To:                 req.To,
		ClientName:         req.QuotationData.ClientName,
		ClientCompanyName:  req.QuotationData.ClientCompanyName,
		YourCompanyName:    req.QuotationData.YourCompanyName,
		ProjectDescription: req.QuotationData.ProjectDescription,
		PDFBase64:          req.PDFBase64,
	})

	if !result.Success() {
		status := http.StatusInternalServerError
		if domain.IsValidation(result.Cause()) {
			status = http.StatusBadRequest
		}

		c.JSON(status, sendMailError{Error: result.ErrorMessage() + " " + result.Cause().Error()})

		return
	}

	c.JSON(http.StatusOK, sendMailSuccess{Success: true, Message: result.Data().Message})
}
