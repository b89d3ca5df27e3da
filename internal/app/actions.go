package app

import (
	"context"
	"log/slog"

	"github.com/quotecraft/quotecraft/internal/domain"
)

// Payload shapes for the action envelopes. Field names match the wire
// contract the web client consumes.

type QuotationPayload struct {
	Quotation string `json:"quotation"`
}

type AdjustTonePayload struct {
	AdjustedQuotation string `json:"adjustedQuotation"`
}

type AddOnsPayload struct {
	AddOnSuggestions []string `json:"addOnSuggestions"`
}

type EmailPayload struct {
	Message string `json:"message"`
}

// QuotationService wraps workflow operations in uniform result envelopes:
// every action resolves to either {success:true,data} or a stable
// user-facing failure message, never a thrown error. The underlying
// cause stays available for transport-level status mapping.
type QuotationService struct {
	workflow *Workflow
	logger   *slog.Logger
}

// NewQuotationService creates the action-wrapper service.
func NewQuotationService(workflow *Workflow, logger *slog.Logger) *QuotationService {
	return &QuotationService{
		workflow: workflow,
		logger:   logger,
	}
}

// GenerateQuotation drafts the quotation for the session.
func (s *QuotationService) GenerateQuotation(ctx context.Context, sessionID string, req domain.QuotationRequest) domain.Result[QuotationPayload] {
	doc, err := s.workflow.Submit(ctx, sessionID, req)
	if err != nil {
		return domain.Fail[QuotationPayload]("Failed to generate quotation.", err)
	}

	return domain.Ok(QuotationPayload{Quotation: doc})
}

// AdjustTone restyles the session's quotation.
func (s *QuotationService) AdjustTone(ctx context.Context, sessionID string, tone domain.Tone) domain.Result[AdjustTonePayload] {
	adjusted, err := s.workflow.AdjustTone(ctx, sessionID, tone)
	if err != nil {
		return domain.Fail[AdjustTonePayload]("Failed to adjust tone.", err)
	}

	return domain.Ok(AdjustTonePayload{AdjustedQuotation: adjusted})
}

// SuggestAddOns proposes add-on services for the session's project.
func (s *QuotationService) SuggestAddOns(ctx context.Context, sessionID string) domain.Result[AddOnsPayload] {
	suggestions, err := s.workflow.SuggestAddOns(ctx, sessionID)
	if err != nil {
		return domain.Fail[AddOnsPayload]("Failed to suggest add-ons.", err)
	}

	return domain.Ok(AddOnsPayload{AddOnSuggestions: suggestions})
}

// SendEmail delivers the session's quotation by email.
func (s *QuotationService) SendEmail(ctx context.Context, sessionID, to string) domain.Result[EmailPayload] {
	if err := s.workflow.SendEmail(ctx, sessionID, to); err != nil {
		return domain.Fail[EmailPayload]("Failed to send email.", err)
	}

	return domain.Ok(EmailPayload{Message: "Email sent successfully"})
}

// DispatchEmail delivers a caller-supplied PDF without a session.
func (s *QuotationService) DispatchEmail(ctx context.Context, req SendEmailRequest) domain.Result[EmailPayload] {
	if err := s.workflow.DispatchEmail(ctx, req); err != nil {
		return domain.Fail[EmailPayload]("Failed to send email.", err)
	}

	return domain.Ok(EmailPayload{Message: "Email sent successfully"})
}
