package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for DecodeConfig
	_ "image/jpeg" // register JPEG decoder for DecodeConfig
	_ "image/png"  // register PNG decoder for DecodeConfig
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// Page geometry in millimetres (16:9, same proportions as the PPTX slides)
const (
	pageWidth  = 338.67
	pageHeight = 190.5
	pageMargin = 12.7
)

// PDFSerializer writes decks as PDF handouts, one page per slide
type PDFSerializer struct {
	// fontFamily is one of the PDF core fonts; theme fonts such as Calibri
	// are not embedded
	fontFamily string
}

// NewPDFSerializer creates a new PDF serializer
func NewPDFSerializer() *PDFSerializer {
	return &PDFSerializer{fontFamily: "Helvetica"}
}

// Format returns "pdf"
func (s *PDFSerializer) Format() string {
	return "pdf"
}

// ContentType returns the PDF MIME type
func (s *PDFSerializer) ContentType() string {
	return "application/pdf"
}

// Extension returns ".pdf"
func (s *PDFSerializer) Extension() string {
	return ".pdf"
}

// Serialize encodes the deck as a PDF
func (s *PDFSerializer) Serialize(deck *entities.Deck) ([]byte, error) {
	if deck == nil || deck.Len() == 0 {
		return nil, entities.ErrEmptyPlan
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		// gofpdf swaps custom sizes for "L"; the size is already wide
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})

	// Fixed dates and sorted catalog keep the output reproducible
	pdf.SetCreationDate(DocumentTime)
	pdf.SetModificationDate(DocumentTime)
	pdf.SetCatalogSort(true)

	pdf.SetTitle(deck.Title, true)
	pdf.SetCreator(Creator, true)
	pdf.SetAuthor(Creator, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	// Core fonts are cp1252; translate UTF-8 text before drawing
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, slide := range deck.Slides {
		pdf.AddPage()
		s.writePage(pdf, tr, slide, deck.Theme)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *PDFSerializer) writePage(pdf *gofpdf.Fpdf, tr func(string) string, slide entities.RenderedSlide, theme entities.Theme) {
	if theme.BackgroundStyle != entities.BackgroundPlain {
		r, g, b := hexRGB(theme.BackgroundColor)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(0, 0, pageWidth, pageHeight, "F")
	}

	contentWidth := pageWidth - 2*pageMargin
	titleSize := float64(theme.TitleSize)

	r, g, b := hexRGB(theme.TitleColor)
	pdf.SetTextColor(r, g, b)

	if slide.Layout == entities.LayoutTitleOnly {
		pdf.SetFont(s.fontFamily, "B", titleSize+8)
		pdf.SetXY(pageMargin, pageHeight/2-15)
		pdf.MultiCell(contentWidth, 14, tr(slide.Title), "", "C", false)
		return
	}

	pdf.SetFont(s.fontFamily, "B", titleSize)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.MultiCell(contentWidth, 14, tr(slide.Title), "", "L", false)

	if theme.BackgroundStyle == entities.BackgroundBanded {
		r, g, b := hexRGB(theme.AccentColor)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(pageMargin, 36, contentWidth, 2, "F")
	}

	bodyWidth := contentWidth
	if slide.HasImage() {
		if w, ok := s.placeImage(pdf, slide); ok {
			bodyWidth = contentWidth - w - 8
		}
	}

	r, g, b = hexRGB(theme.BodyColor)
	pdf.SetTextColor(r, g, b)
	pdf.SetFont(s.fontFamily, "", float64(theme.BodySize))

	lineHeight := float64(theme.BodySize) * 0.55
	pdf.SetY(44)

	last := len(slide.Bullets) - 1
	for i, line := range slide.Bullets {
		pdf.SetX(pageMargin)
		if i == last && slide.Truncated > 0 {
			pdf.SetFont(s.fontFamily, "I", float64(theme.BodySize))
			pdf.MultiCell(bodyWidth, lineHeight, tr(line), "", "L", false)
			continue
		}
		pdf.MultiCell(bodyWidth, lineHeight, tr(bulletChar+" "+line), "", "L", false)
		pdf.Ln(lineHeight * 0.4)
	}
}

// placeImage draws the slide image on the right. Images that cannot be
// decoded are skipped.
func (s *PDFSerializer) placeImage(pdf *gofpdf.Fpdf, slide entities.RenderedSlide) (float64, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(slide.Image.Data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return 0, false
	}

	imageType := map[string]string{"png": "PNG", "jpeg": "JPG", "gif": "GIF"}[format]
	if imageType == "" {
		return 0, false
	}

	name := fmt.Sprintf("slide-%d", slide.Index)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(slide.Image.Data))

	w := 117.0
	h := w * float64(cfg.Height) / float64(cfg.Width)
	if h > pageHeight-44-pageMargin {
		h = pageHeight - 44 - pageMargin
		w = h * float64(cfg.Width) / float64(cfg.Height)
	}

	pdf.ImageOptions(name, pageWidth-pageMargin-w, 44, w, h, false, opts, 0, "")
	return w, true
}

// hexRGB splits a validated 6-digit hex color into components
func hexRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 0, 0, 0
	}
	return int(value >> 16 & 0xFF), int(value >> 8 & 0xFF), int(value & 0xFF)
}

// Ensure PDFSerializer implements ports.DeckSerializer
var _ ports.DeckSerializer = (*PDFSerializer)(nil)
