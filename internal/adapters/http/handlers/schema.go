package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/quotecraft/quotecraft/internal/domain"
)

// SchemaHandler serves the intake form's JSON schema so clients can
// build and validate the quotation form without duplicating the rules.
type SchemaHandler struct {
	schema *jsonschema.Schema
}

// NewSchemaHandler reflects the intake schema once at construction.
func NewSchemaHandler() *SchemaHandler {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	return &SchemaHandler{
		schema: reflector.Reflect(&domain.QuotationRequest{}),
	}
}

// Schema handles GET /api/v1/quotation/schema.
func (h *SchemaHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, h.schema)
}
