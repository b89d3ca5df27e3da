package app

import (
	"context"
	"encoding/base64"
	"html"
	"log/slog"
	"strings"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/ports"
)

// Workflow drives a quotation session from intake to delivery. All
// session-bound operations are single-flight: a session with an operation
// in progress rejects further operations with a conflict until it settles.
type Workflow struct {
	store    *SessionStore
	gen      ports.Generator
	renderer ports.Renderer
	mailer   ports.Mailer
	logger   *slog.Logger
	metrics  *Metrics
}

// WorkflowConfig contains the workflow's dependencies.
type WorkflowConfig struct {
	Store     *SessionStore
	Generator ports.Generator
	Renderer  ports.Renderer
	Mailer    ports.Mailer
	Logger    *slog.Logger
	Metrics   *Metrics
}

// NewWorkflow creates a workflow service with the provided dependencies.
func NewWorkflow(cfg WorkflowConfig) *Workflow {
	return &Workflow{
		store:    cfg.Store,
		gen:      cfg.Generator,
		renderer: cfg.Renderer,
		mailer:   cfg.Mailer,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// CreateSession opens a new idle session.
func (w *Workflow) CreateSession(ctx context.Context) Session {
	sess := w.store.Create()

	w.metrics.SetActiveSessions(w.store.Len())
	w.logger.InfoContext(ctx, "session created", slog.String("session_id", sess.ID))

	return sess
}

// GetSession returns a snapshot of the session.
func (w *Workflow) GetSession(_ context.Context, id string) (Session, error) {
	return w.store.Get(id)
}

// DeleteSession removes the session.
func (w *Workflow) DeleteSession(ctx context.Context, id string) error {
	if err := w.store.Delete(id); err != nil {
		return err
	}

	w.metrics.SetActiveSessions(w.store.Len())
	w.logger.InfoContext(ctx, "session deleted", slog.String("session_id", id))

	return nil
}

// Submit generates a quotation from the intake request and moves the
// session to the generated state. Resubmitting replaces the previous
// document and clears stale suggestions.
func (w *Workflow) Submit(ctx context.Context, id string, req domain.QuotationRequest) (domain.QuotationDocument, error) {
	if _, err := w.store.Begin(id, "generate"); err != nil {
		return "", err
	}

	doc, err := w.gen.GenerateQuotation(ctx, req)
	w.metrics.generation("generate-quotation", err)

	if err != nil {
		w.store.End(id, nil)
		w.logger.ErrorContext(ctx, "quotation generation failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)

		return "", err
	}

	w.store.End(id, func(s *Session) {
		s.Request = req
		s.Document = doc
		s.Suggestions = nil
		s.State = StateGenerated
	})

	w.logger.InfoContext(ctx, "quotation generated",
		slog.String("session_id", id),
		slog.Int("document_bytes", len(doc)),
	)

	return doc, nil
}

// AdjustTone restyles the session's document to the requested tone and
// stores the result as the new live document.
func (w *Workflow) AdjustTone(ctx context.Context, id string, tone domain.Tone) (domain.QuotationDocument, error) {
	sess, err := w.beginGenerated(id, "adjust-tone")
	if err != nil {
		return "", err
	}

	adjusted, err := w.gen.AdjustTone(ctx, sess.Document, tone)
	w.metrics.generation("adjust-tone", err)

	if err != nil {
		w.store.End(id, nil)
		w.logger.ErrorContext(ctx, "tone adjustment failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)

		return "", err
	}

	w.store.End(id, func(s *Session) {
		s.Document = adjusted
	})

	return adjusted, nil
}

// SuggestAddOns proposes add-on services for the session's project
// description. Suggestions replace any previous list.
func (w *Workflow) SuggestAddOns(ctx context.Context, id string) (domain.AddOnSuggestionList, error) {
	sess, err := w.beginGenerated(id, "suggest-add-ons")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(sess.Request.ProjectDescription) == "" {
		w.store.End(id, nil)
		return nil, domain.NewPreconditionError("suggest-add-ons", "project description is empty")
	}

	suggestions, err := w.gen.SuggestAddOns(ctx, sess.Request.ProjectDescription)
	w.metrics.generation("suggest-add-ons", err)

	if err != nil {
		w.store.End(id, nil)
		return nil, err
	}

	w.store.End(id, func(s *Session) {
		s.Suggestions = suggestions
	})

	return suggestions, nil
}

// UpdateDocument replaces the live document with the user's edit.
// Last write wins; there is no merge.
func (w *Workflow) UpdateDocument(_ context.Context, id string, doc domain.QuotationDocument) error {
	if strings.TrimSpace(doc) == "" {
		return domain.NewValidationError("document", "must not be empty")
	}

	if _, err := w.beginGenerated(id, "update-document"); err != nil {
		return err
	}

	w.store.End(id, func(s *Session) {
		s.Document = doc
	})

	return nil
}

// ExportResult is a rendered PDF with its download filename.
type ExportResult struct {
	Filename string
	Data     []byte
}

// Export produces the PDF for the session's current document: the
// document is restyled for print, then paginated deterministically.
func (w *Workflow) Export(ctx context.Context, id string) (ExportResult, error) {
	sess, err := w.beginGenerated(id, "export")
	if err != nil {
		return ExportResult{}, err
	}

	defer w.store.End(id, nil)

	result, err := w.renderDocument(ctx, sess)
	w.metrics.export(err)

	if err != nil {
		w.logger.ErrorContext(ctx, "export failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)

		return ExportResult{}, err
	}

	w.logger.InfoContext(ctx, "quotation exported",
		slog.String("session_id", id),
		slog.Int("pdf_bytes", len(result.Data)),
	)

	return result, nil
}

// SendEmail delivers the session's quotation to the recipient: a short
// cover message is generated, the current document is rendered to PDF,
// and both are relayed as one email.
func (w *Workflow) SendEmail(ctx context.Context, id, to string) error {
	if strings.TrimSpace(to) == "" {
		return domain.NewValidationError("to", "must not be empty")
	}

	sess, err := w.beginGenerated(id, "send-email")
	if err != nil {
		return err
	}

	defer w.store.End(id, nil)

	body, err := w.gen.GenerateEmailBody(ctx, ports.EmailBodyRequest{
		ClientName:         sess.Request.ClientName,
		YourCompanyName:    sess.Request.YourCompanyName,
		ProjectDescription: sess.Request.ProjectDescription,
	})
	w.metrics.generation("generate-email-body", err)

	if err != nil {
		w.metrics.email(err)
		return err
	}

	result, err := w.renderDocument(ctx, sess)
	if err != nil {
		w.metrics.email(err)
		return err
	}

	err = w.dispatch(ctx, sess.Request, to, body, result)
	w.metrics.email(err)

	if err != nil {
		w.logger.ErrorContext(ctx, "email dispatch failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)

		return err
	}

	return nil
}

// SendEmailRequest is the sessionless dispatch input: the caller supplies
// the already-rendered PDF as base64.
type SendEmailRequest struct {
	To                 string
	ClientName         string
	ClientCompanyName  string
	YourCompanyName    string
	ProjectDescription string
	PDFBase64          string
}

// DispatchEmail generates a cover message and relays the caller-supplied
// PDF without touching any session.
func (w *Workflow) DispatchEmail(ctx context.Context, req SendEmailRequest) error {
	pdfData, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		return domain.NewValidationError("pdfBase64", "must be valid base64")
	}

	body, err := w.gen.GenerateEmailBody(ctx, ports.EmailBodyRequest{
		ClientName:         req.ClientName,
		YourCompanyName:    req.YourCompanyName,
		ProjectDescription: req.ProjectDescription,
	})
	w.metrics.generation("generate-email-body", err)

	if err != nil {
		w.metrics.email(err)
		return err
	}

	quotationReq := domain.QuotationRequest{
		ClientName:        req.ClientName,
		ClientCompanyName: req.ClientCompanyName,
		YourCompanyName:   req.YourCompanyName,
	}

	err = w.dispatch(ctx, quotationReq, req.To, body, ExportResult{
		Filename: domain.QuotationFilename(req.ClientCompanyName),
		Data:     pdfData,
	})
	w.metrics.email(err)

	return err
}

// beginGenerated acquires the session for an operation that requires a
// generated document.
func (w *Workflow) beginGenerated(id, op string) (Session, error) {
	sess, err := w.store.Begin(id, op)
	if err != nil {
		return Session{}, err
	}

	if sess.State != StateGenerated {
		w.store.End(id, nil)
		return Session{}, domain.NewPreconditionError(op, "no quotation has been generated yet")
	}

	return sess, nil
}

func (w *Workflow) renderDocument(ctx context.Context, sess Session) (ExportResult, error) {
	formatted, err := w.gen.FormatForPDF(ctx, ports.FormatRequest{
		QuotationHTML: sess.Document,
		ClientName:    sess.Request.ClientName,
		CompanyName:   sess.Request.ClientCompanyName,
	})
	w.metrics.generation("format-quotation", err)

	if err != nil {
		return ExportResult{}, err
	}

	data, err := w.renderer.Render(formatted, ports.ExportMetadata{
		ClientName:        sess.Request.ClientName,
		ClientCompanyName: sess.Request.ClientCompanyName,
		YourCompanyName:   sess.Request.YourCompanyName,
	})
	if err != nil {
		return ExportResult{}, domain.NewGenerationError("export", "rendering document failed", err)
	}

	return ExportResult{
		Filename: domain.QuotationFilename(sess.Request.ClientCompanyName),
		Data:     data,
	}, nil
}

func (w *Workflow) dispatch(ctx context.Context, req domain.QuotationRequest, to, body string, result ExportResult) error {
	return w.mailer.Send(ctx, ports.Message{
		FromName: req.YourCompanyName,
		To:       to,
		Subject:  "Your Project Quotation from " + req.YourCompanyName,
		HTMLBody: coverMessageHTML(body),
		Attachments: []ports.Attachment{
			{
				Filename:    result.Filename,
				ContentType: "application/pdf",
				Content:     result.Data,
			},
		},
	})
}

// coverMessageHTML wraps the generated plain-text cover message for an
// HTML email body.
func coverMessageHTML(body string) string {
	escaped := html.EscapeString(body)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}
