// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrGeneration, ErrEmail, etc.)
//   - Methods represent business operations, not CRUD operations
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/quotecraft/quotecraft/internal/domain"
)

// FormatRequest carries the input for the format-for-pdf operation.
type FormatRequest struct {
	// QuotationHTML is the raw markup body of the quotation to restyle.
	QuotationHTML string

	// ClientName is the name of the client.
	ClientName string

	// CompanyName is the name of the client's company.
	CompanyName string
}

// EmailBodyRequest carries the input for the generate-email-body operation.
type EmailBodyRequest struct {
	ClientName         string
	YourCompanyName    string
	ProjectDescription string
}

// Generator is the text-generation boundary: each method sends one fixed
// prompt template with interpolated fields to the external provider and
// returns output validated against the operation's declared schema.
//
// All methods fail with domain.ErrGeneration when the provider errors,
// times out, or returns a non-conforming payload. A single failed call
// surfaces immediately; no retries.
type Generator interface {
	// GenerateQuotation drafts a full quotation body from the intake request.
	// The returned markup contains introduction, service breakdown,
	// deliverables, timeline, pricing estimate, terms, and conclusion,
	// styled to req.PreferredTone, using only information present in req.
	GenerateQuotation(ctx context.Context, req domain.QuotationRequest) (domain.QuotationDocument, error)

	// AdjustTone re-styles the quotation to the requested tone without
	// dropping sections.
	AdjustTone(ctx context.Context, quotation string, tone domain.Tone) (string, error)

	// SuggestAddOns proposes add-on services for the project description.
	// An empty list is a valid, non-error outcome.
	SuggestAddOns(ctx context.Context, projectDescription string) (domain.AddOnSuggestionList, error)

	// FormatForPDF restructures the quotation body with explicit section
	// headings, lists and emphasis for pagination. The result never contains
	// outer document wrapper markup and preserves all source information.
	FormatForPDF(ctx context.Context, req FormatRequest) (string, error)

	// GenerateEmailBody drafts a short (<100 word) cover message addressing
	// the client by name, naming the sending company, referencing the
	// project, and indicating the quotation is attached.
	GenerateEmailBody(ctx context.Context, req EmailBodyRequest) (string, error)
}

// ExportMetadata carries the deterministic header fields for the PDF.
type ExportMetadata struct {
	ClientName        string
	ClientCompanyName string
	YourCompanyName   string
}

// Renderer paginates restyled quotation markup into a binary document.
// This is the deterministic second phase of export; it never calls the
// text-generation provider.
type Renderer interface {
	// Render wraps the restyled body with the fixed header and footer
	// blocks and paginates it, keeping headings and list items whole
	// across page boundaries.
	Render(body string, meta ExportMetadata) ([]byte, error)
}

// Attachment is a binary file carried by an outgoing email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outgoing email handed to the mail relay.
type Message struct {
	FromName string
	To       string
	Subject  string
	HTMLBody string

	Attachments []Attachment
}

// Mailer is the mail-relay boundary. Either the relay accepted the send
// or it did not; there is no partial-send state.
type Mailer interface {
	// Send relays the message. Fails with domain.ErrEmail on rejection
	// and domain.ErrUnavailable when the relay is unreachable.
	Send(ctx context.Context, msg Message) error
}
