// Package domain contains core business entities and rules.
package domain

// Tone is the stylistic register applied uniformly to quotation content.
type Tone string

// Supported tones.
const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneFormal       Tone = "Formal"
	ToneCreative     Tone = "Creative"
)

// Tones lists all supported tones in display order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneFriendly, ToneFormal, ToneCreative}
}

// Valid reports whether the tone is one of the supported registers.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneFriendly, ToneFormal, ToneCreative:
		return true
	default:
		return false
	}
}

// ParseTone converts a string into a Tone.
// Returns a validation error for unknown values.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if !t.Valid() {
		return "", NewValidationError("preferredTone",
			"must be one of Professional, Friendly, Formal, Creative")
	}

	return t, nil
}

// QuotationRequest is the structured intake for one quotation.
// Immutable once submitted for a given generation; owned by the session
// for the duration of one workflow run.
type QuotationRequest struct {
	ClientName          string `json:"clientName"          jsonschema:"minLength=2"           validate:"required,min=2"`
	ClientCompanyName   string `json:"clientCompanyName"   jsonschema:"minLength=2"           validate:"required,min=2"`
	YourCompanyName     string `json:"yourCompanyName"     jsonschema:"minLength=2"           validate:"required,min=2"`
	ProjectDescription  string `json:"projectDescription"  jsonschema:"minLength=10"          validate:"required,min=10"`
	ServicesRequired    string `json:"servicesRequired"    jsonschema:"minLength=5"           validate:"required,min=5"`
	Timeline            string `json:"timeline"            jsonschema:"minLength=2"           validate:"required,min=2"`
	BudgetRange         string `json:"budgetRange"         jsonschema:"minLength=2"           validate:"required,min=2"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
	PreferredTone       Tone   `json:"preferredTone"       jsonschema:"enum=Professional,enum=Friendly,enum=Formal,enum=Creative" validate:"required,oneof=Professional Friendly Formal Creative"`
	AddOns              string `json:"addOns,omitempty"`
}

// QuotationDocument is the structured markup body of the quotation.
// Exactly one live copy exists per session; edits are last-write-wins.
type QuotationDocument = string

// AddOnSuggestionList is an ordered sequence of short add-on suggestions.
// Ephemeral: recomputed on demand, never persisted alongside the document.
type AddOnSuggestionList = []string

// QuotationFilename derives the PDF filename from the client company name.
// Falls back to "Quote" when the company name is empty.
func QuotationFilename(clientCompanyName string) string {
	company := clientCompanyName
	if company == "" {
		company = "Quote"
	}

	return "Quotation_" + company + ".pdf"
}
