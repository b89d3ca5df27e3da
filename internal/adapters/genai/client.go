// Package genai adapts the external text-generation provider to the
// application's Generator port. Each operation is a single forced tool
// call against a chat model; outputs are validated against a per-operation
// JSON schema before they reach the application layer.
package genai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/platform/config"
	"github.com/quotecraft/quotecraft/internal/ports"
)

type adjustToneInput struct {
	Quotation string
	Tone      domain.Tone
}

// Client implements ports.Generator against an OpenAI-compatible endpoint.
type Client struct {
	timeout time.Duration
	logger  *slog.Logger

	quotation *chain[domain.QuotationRequest, quotationOutput]
	tone      *chain[adjustToneInput, adjustToneOutput]
	addOns    *chain[string, addOnsOutput]
	format    *chain[ports.FormatRequest, formatOutput]
	emailBody *chain[ports.EmailBodyRequest, emailBodyOutput]
}

// Ensure Client satisfies its ports at compile time.
var (
	_ ports.Generator     = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

// NewClient constructs the generation client and derives the per-operation
// tool schemas once, up front.
func NewClient(ctx context.Context, cfg config.GenAIConfig, logger *slog.Logger) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	return newClientWithModel(chatModel, cfg.Timeout, logger)
}

// newClientWithModel is the seam used by tests to inject a fake model.
func newClientWithModel(chatModel model.ToolCallingChatModel, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	quotation, err := newChain[domain.QuotationRequest, quotationOutput](
		chatModel, buildQuotationPrompt,
		"generate_quotation", "Return the generated quotation document")
	if err != nil {
		return nil, err
	}

	tone, err := newChain[adjustToneInput, adjustToneOutput](
		chatModel, buildAdjustTonePrompt,
		"adjust_tone", "Return the quotation rewritten in the requested tone")
	if err != nil {
		return nil, err
	}

	addOns, err := newChain[string, addOnsOutput](
		chatModel, buildSuggestAddOnsPrompt,
		"suggest_add_ons", "Return add-on service suggestions for the project")
	if err != nil {
		return nil, err
	}

	format, err := newChain[ports.FormatRequest, formatOutput](
		chatModel, buildFormatPrompt,
		"format_quotation", "Return the quotation restructured as clean HTML")
	if err != nil {
		return nil, err
	}

	emailBody, err := newChain[ports.EmailBodyRequest, emailBodyOutput](
		chatModel, buildEmailBodyPrompt,
		"generate_email_body", "Return a short cover message for the quotation email")
	if err != nil {
		return nil, err
	}

	return &Client{
		timeout:   timeout,
		logger:    logger,
		quotation: quotation,
		tone:      tone,
		addOns:    addOns,
		format:    format,
		emailBody: emailBody,
	}, nil
}

// GenerateQuotation drafts a full quotation from the intake request.
// Optional fields are normalized to "None" so the prompt never carries
// empty slots the model might fill with invented data.
func (c *Client) GenerateQuotation(ctx context.Context, req domain.QuotationRequest) (domain.QuotationDocument, error) {
	if strings.TrimSpace(req.ProjectDescription) == "" {
		return "", domain.NewValidationError("projectDescription", "must not be empty")
	}

	if strings.TrimSpace(req.SpecialRequirements) == "" {
		req.SpecialRequirements = "None"
	}

	if strings.TrimSpace(req.AddOns) == "" {
		req.AddOns = "None"
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	out, err := c.quotation.invoke(ctx, req)
	if err != nil {
		return "", domain.NewGenerationError("generate-quotation", "model call failed", err)
	}

	if strings.TrimSpace(out.Quotation) == "" {
		return "", domain.NewGenerationError("generate-quotation", "model returned an empty quotation", nil)
	}

	c.logger.DebugContext(ctx, "quotation generated",
		slog.String("client_company", req.ClientCompanyName),
		slog.Duration("duration", time.Since(start)),
	)

	return out.Quotation, nil
}

// AdjustTone rewrites the quotation in the requested tone.
func (c *Client) AdjustTone(ctx context.Context, quotation string, tone domain.Tone) (string, error) {
	if strings.TrimSpace(quotation) == "" {
		return "", domain.NewValidationError("quotation", "must not be empty")
	}

	if !tone.Valid() {
		return "", domain.NewValidationError("tone", "must be one of Professional, Friendly, Formal, Creative")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.tone.invoke(ctx, adjustToneInput{Quotation: quotation, Tone: tone})
	if err != nil {
		return "", domain.NewGenerationError("adjust-tone", "model call failed", err)
	}

	if strings.TrimSpace(out.AdjustedQuotation) == "" {
		return "", domain.NewGenerationError("adjust-tone", "model returned an empty quotation", nil)
	}

	return out.AdjustedQuotation, nil
}

// SuggestAddOns proposes add-on services for the project description.
// An empty suggestion list is a valid outcome, not an error.
func (c *Client) SuggestAddOns(ctx context.Context, projectDescription string) (domain.AddOnSuggestionList, error) {
	if strings.TrimSpace(projectDescription) == "" {
		return nil, domain.NewValidationError("projectDescription", "must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.addOns.invoke(ctx, projectDescription)
	if err != nil {
		return nil, domain.NewGenerationError("suggest-add-ons", "model call failed", err)
	}

	if out.AddOnSuggestions == nil {
		return domain.AddOnSuggestionList{}, nil
	}

	return out.AddOnSuggestions, nil
}

// FormatForPDF restructures the quotation body for pagination.
func (c *Client) FormatForPDF(ctx context.Context, req ports.FormatRequest) (string, error) {
	if strings.TrimSpace(req.QuotationHTML) == "" {
		return "", domain.NewValidationError("quotationHtml", "must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.format.invoke(ctx, req)
	if err != nil {
		return "", domain.NewGenerationError("format-quotation", "model call failed", err)
	}

	if strings.TrimSpace(out.FormattedHTML) == "" {
		return "", domain.NewGenerationError("format-quotation", "model returned empty markup", nil)
	}

	return out.FormattedHTML, nil
}

// GenerateEmailBody drafts the short cover message for the quotation email.
func (c *Client) GenerateEmailBody(ctx context.Context, req ports.EmailBodyRequest) (string, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return "", domain.NewValidationError("clientName", "must not be empty")
	}

	if strings.TrimSpace(req.YourCompanyName) == "" {
		return "", domain.NewValidationError("yourCompanyName", "must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.emailBody.invoke(ctx, req)
	if err != nil {
		return "", domain.NewGenerationError("generate-email-body", "model call failed", err)
	}

	if strings.TrimSpace(out.EmailBody) == "" {
		return "", domain.NewGenerationError("generate-email-body", "model returned an empty message", nil)
	}

	return out.EmailBody, nil
}

// Name identifies this component in health check responses.
func (c *Client) Name() string {
	return "genai"
}

// Check reports readiness of the generation client. The provider exposes
// no cheap ping, so readiness means the client and its tool schemas were
// constructed; actual provider failures surface per call.
func (c *Client) Check(_ context.Context) error {
	return nil
}
