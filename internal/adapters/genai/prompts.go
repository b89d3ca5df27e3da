package genai

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/ports"
)

// Output schemas for the forced tool calls. Field descriptions become JSON
// schema descriptions, which the model uses to shape its answer.

type quotationOutput struct {
	Quotation string `json:"quotation" jsonschema:"description=The generated quotation,required"`
}

type adjustToneOutput struct {
	AdjustedQuotation string `json:"adjustedQuotation" jsonschema:"description=The quotation with the adjusted tone,required"`
}

type addOnsOutput struct {
	AddOnSuggestions []string `json:"addOnSuggestions" jsonschema:"description=An array of add-on service suggestions relevant to the project description,required"`
}

type formatOutput struct {
	FormattedHTML string `json:"formattedHtml" jsonschema:"description=The formatted HTML content ready for PDF generation,required"`
}

type emailBodyOutput struct {
	EmailBody string `json:"emailBody" jsonschema:"description=A short friendly and professional email message,required"`
}

func buildQuotationPrompt(req domain.QuotationRequest) []*schema.Message {
	prompt := fmt.Sprintf(`On behalf of %s, generate a detailed and human-sounding quotation based on the following client input. Include:

- A warm introduction
- Service Breakdown
- Deliverables
- Timeline
- Pricing Estimate
- Terms & Conditions
- Conclusion

Use proper formatting, headings, and a human tone. Avoid sounding like an AI. Do not invent data.

Client Name: %s
Client's Company Name: %s
Project Description: %s
Services Required: %s
Timeline: %s
Budget Range: %s
Special Requirements: %s
Preferred Tone: %s
Add-ons: %s`,
		req.YourCompanyName,
		req.ClientName,
		req.ClientCompanyName,
		req.ProjectDescription,
		req.ServicesRequired,
		req.Timeline,
		req.BudgetRange,
		req.SpecialRequirements,
		req.PreferredTone,
		req.AddOns,
	)

	return []*schema.Message{schema.UserMessage(prompt)}
}

func buildAdjustTonePrompt(input adjustToneInput) []*schema.Message {
	prompt := fmt.Sprintf(`You are a business communication expert. Adjust the following quotation to match the specified tone.

Quotation: %s

Tone: %s

Adjusted Quotation:`, input.Quotation, input.Tone)

	return []*schema.Message{schema.UserMessage(prompt)}
}

func buildSuggestAddOnsPrompt(projectDescription string) []*schema.Message {
	prompt := fmt.Sprintf(`Based on the following project description, suggest relevant add-on services that could enhance the quotation. Provide a list of add-ons that would benefit the client, formatted as a JSON array.

Project Description: %s

Consider add-ons like:
- Ongoing Support
- Maintenance
- Training
- Premium Features
- Expedited Delivery
- Custom Design
`, projectDescription)

	return []*schema.Message{schema.UserMessage(prompt)}
}

func buildFormatPrompt(req ports.FormatRequest) []*schema.Message {
	prompt := fmt.Sprintf(`You are a professional document designer. Your task is to take the following raw quotation HTML content and reformat it into a clean, well-structured, and professional HTML document suitable for converting to a PDF.

The output should be a single block of HTML content. Do NOT include <html>, <head>, or <body> tags.

Use clear headings (e.g., <h2>, <h3>), paragraphs (<p>), lists (<ul>, <li>), and bold text (<strong>) to improve readability. Ensure all the original information is present. The structure should be logical, flowing from introduction to services, timeline, pricing, and conclusion.

Client Name: %s
Company Name: %s

Raw Quotation Content:
%s
`, req.ClientName, req.CompanyName, req.QuotationHTML)

	return []*schema.Message{schema.UserMessage(prompt)}
}

func buildEmailBodyPrompt(req ports.EmailBodyRequest) []*schema.Message {
	prompt := fmt.Sprintf(`Generate a short, friendly and professional message to accompany a business quotation for a client.

Address the client, %s, by name. Mention that the quotation from %s is attached and that you're looking forward to their response. Keep it under 100 words.

Project Description: %s
`, req.ClientName, req.YourCompanyName, req.ProjectDescription)

	return []*schema.Message{schema.UserMessage(prompt)}
}
