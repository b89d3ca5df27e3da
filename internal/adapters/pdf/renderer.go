// Package pdf paginates restyled quotation markup into an A4 document.
// Rendering is the deterministic half of export: it never calls the
// text-generation provider, and identical input yields identical bytes.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/quotecraft/quotecraft/internal/ports"
)

// Page geometry in millimetres, A4 portrait.
const (
	pageWidth  = 210.0
	pageHeight = 297.0

	sideMargin   = 12.7
	topMargin    = 19.05
	bottomMargin = 19.05

	contentWidth = pageWidth - 2*sideMargin

	bodyLineHeight    = 5.5
	headingLineHeight = 7.5
)

// Renderer implements ports.Renderer with fpdf.
type Renderer struct {
	now func() time.Time
}

var _ ports.Renderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render wraps the restyled body with the fixed header and footer blocks
// and paginates it. Headings stay attached to at least one line of the
// following block; paragraphs and list items that fit on a single page
// are never split across a page boundary.
func (r *Renderer) Render(body string, meta ports.ExportMetadata) ([]byte, error) {
	blocks, err := parseBlocks(body)
	if err != nil {
		return nil, fmt.Errorf("parsing quotation markup: %w", err)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("quotation markup contained no renderable content")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetTitle("Quotation", true)
	doc.SetCreationDate(r.now())
	doc.SetModificationDate(r.now())
	doc.SetMargins(sideMargin, topMargin, sideMargin)
	doc.SetAutoPageBreak(true, bottomMargin)
	doc.AddPage()

	r.drawHeader(doc, tr, meta)

	for _, b := range blocks {
		drawBlock(doc, tr, b)
	}

	drawFooter(doc, tr)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(doc *fpdf.Fpdf, tr func(string) string, meta ports.ExportMetadata) {
	doc.SetTextColor(46, 49, 146)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 10, tr("Quotation"), "", 1, "C", false, 0, "")

	doc.SetTextColor(51, 51, 51)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(fmt.Sprintf("For: %s (%s)", meta.ClientName, meta.ClientCompanyName)), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("From: %s", meta.YourCompanyName)), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Date: %s", r.now().Format("1/2/2006"))), "", 1, "C", false, 0, "")

	doc.Ln(2)
	doc.SetDrawColor(46, 49, 146)
	doc.SetLineWidth(0.6)

	y := doc.GetY()
	doc.Line(sideMargin, y, pageWidth-sideMargin, y)
	doc.Ln(6)
}

func drawBlock(doc *fpdf.Fpdf, tr func(string) string, b block) {
	switch b.kind {
	case blockHeading1, blockHeading2, blockHeading3:
		drawHeading(doc, tr, b)
	case blockListItem:
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(51, 51, 51)

		text := tr("• " + b.text)
		keepWhole(doc, blockHeight(doc, text, bodyLineHeight))
		doc.MultiCell(contentWidth, bodyLineHeight, text, "", "L", false)
		doc.Ln(0.5)
	default:
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(51, 51, 51)

		text := tr(b.text)
		keepWhole(doc, blockHeight(doc, text, bodyLineHeight))
		doc.MultiCell(contentWidth, bodyLineHeight, text, "", "L", false)
		doc.Ln(2)
	}
}

func drawHeading(doc *fpdf.Fpdf, tr func(string) string, b block) {
	sizes := map[blockKind]float64{
		blockHeading1: 16,
		blockHeading2: 13,
		blockHeading3: 11,
	}

	doc.SetFont("Helvetica", "B", sizes[b.kind])
	doc.SetTextColor(17, 17, 17)

	text := tr(b.text)

	// A heading must carry at least one line of what follows onto the
	// same page, otherwise it starts the next page.
	needed := blockHeight(doc, text, headingLineHeight) + bodyLineHeight
	if doc.GetY()+needed > pageHeight-bottomMargin {
		doc.AddPage()
	}

	doc.Ln(2)
	doc.MultiCell(contentWidth, headingLineHeight, text, "", "L", false)

	if b.kind == blockHeading2 {
		doc.SetDrawColor(238, 238, 238)
		doc.SetLineWidth(0.3)

		y := doc.GetY()
		doc.Line(sideMargin, y, pageWidth-sideMargin, y)
	}

	doc.Ln(1.5)
}

// keepWhole starts a new page when the block would straddle a page
// boundary. Blocks taller than a full page flow with the automatic
// page break instead.
func keepWhole(doc *fpdf.Fpdf, height float64) {
	if height > pageHeight-topMargin-bottomMargin {
		return
	}

	if doc.GetY()+height > pageHeight-bottomMargin {
		doc.AddPage()
	}
}

func blockHeight(doc *fpdf.Fpdf, text string, lineHeight float64) float64 {
	lines := doc.SplitText(text, contentWidth)
	return float64(len(lines)) * lineHeight
}

func drawFooter(doc *fpdf.Fpdf, tr func(string) string) {
	keepWhole(doc, 14)

	doc.Ln(6)
	doc.SetDrawColor(238, 238, 238)
	doc.SetLineWidth(0.3)

	y := doc.GetY()
	doc.Line(sideMargin, y, pageWidth-sideMargin, y)
	doc.Ln(3)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(119, 119, 119)
	doc.CellFormat(0, 5, tr("Thank you for considering our services."), "", 1, "C", false, 0, "")
}
