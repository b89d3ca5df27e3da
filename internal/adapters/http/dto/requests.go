package dto

import (
	"time"

	"github.com/quotecraft/quotecraft/internal/app"
)

// SessionResponse is the wire representation of a workflow session.
type SessionResponse struct {
	ID          string    `json:"id"`
	State       string    `json:"state"`
	Document    string    `json:"document,omitempty"`
	Suggestions []string  `json:"addOnSuggestions,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewSessionResponse converts a session snapshot to its wire form.
func NewSessionResponse(sess app.Session) SessionResponse {
	return SessionResponse{
		ID:          sess.ID,
		State:       string(sess.State),
		Document:    sess.Document,
		Suggestions: sess.Suggestions,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
		ExpiresAt:   sess.ExpiresAt,
	}
}

// AdjustToneRequest asks for the session's quotation in a different tone.
type AdjustToneRequest struct {
	Tone string `json:"tone" validate:"required"`
}

// UpdateDocumentRequest replaces the session's live document.
type UpdateDocumentRequest struct {
	Document string `json:"document" validate:"required,notempty"`
}

// EmailRequest asks for the session's quotation to be emailed.
type EmailRequest struct {
	To string `json:"to" validate:"required,email"`
}

// SendEmailRequest is the sessionless dispatch payload: the caller
// supplies the recipient, the quotation context, and the rendered PDF.
type SendEmailRequest struct {
	To            string         `json:"to"`
	QuotationData *QuotationData `json:"quotationData"`
	PDFBase64     string         `json:"pdfBase64"`
}

// QuotationData carries the fields the cover message and filename need.
type QuotationData struct {
	ClientName         string `json:"clientName"`
	ClientCompanyName  string `json:"clientCompanyName"`
	YourCompanyName    string `json:"yourCompanyName"`
	ProjectDescription string `json:"projectDescription"`
}
