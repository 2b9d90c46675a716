package export

import (
	"bytes"
	"fmt"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// Slide geometry for the 16:9 layout (13.333in x 7.5in), in EMU
const (
	emuPerInch = 914400

	slideWidth  = int64(12192000)
	slideHeight = int64(7.5 * emuPerInch)

	marginX      = int64(0.5 * emuPerInch)
	contentWidth = slideWidth - 2*marginX

	titleTop    = int64(0.4 * emuPerInch)
	titleHeight = int64(1.0 * emuPerInch)

	bandTop    = int64(1.45 * emuPerInch)
	bandHeight = int64(0.08 * emuPerInch)

	bodyTop    = int64(1.7 * emuPerInch)
	bodyHeight = int64(5.3 * emuPerInch)

	imageWidth  = int64(4.6 * emuPerInch)
	imageHeight = int64(3.45 * emuPerInch)
	imageGap    = int64(0.3 * emuPerInch)
)

// DocumentTime is stamped into every generated file so output bytes only
// depend on the deck.
var DocumentTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Creator is written into document properties
const Creator = "deckgenie"

const bulletChar = "•"

// PPTXSerializer writes decks as PowerPoint 2007+ files
type PPTXSerializer struct{}

// NewPPTXSerializer creates a new PPTX serializer
func NewPPTXSerializer() *PPTXSerializer {
	return &PPTXSerializer{}
}

// Format returns "pptx"
func (s *PPTXSerializer) Format() string {
	return "pptx"
}

// ContentType returns the PPTX MIME type
func (s *PPTXSerializer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
}

// Extension returns ".pptx"
func (s *PPTXSerializer) Extension() string {
	return ".pptx"
}

// Serialize encodes the deck. Slides are written in deck order.
func (s *PPTXSerializer) Serialize(deck *entities.Deck) ([]byte, error) {
	if deck == nil || deck.Len() == 0 {
		return nil, entities.ErrEmptyPlan
	}

	p := ppt.New()
	p.GetLayout().SetLayout(ppt.LayoutScreen16x9)

	props := p.GetDocumentProperties()
	props.Title = deck.Title
	props.Creator = Creator
	props.LastModifiedBy = Creator
	props.Created = DocumentTime
	props.Modified = DocumentTime

	for i, rendered := range deck.Slides {
		// ppt.New starts with one empty slide; reuse it for the first
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		s.writeSlide(slide, rendered, deck.Theme)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("creating pptx writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing pptx: %w", err)
	}

	return buf.Bytes(), nil
}

// writeSlide lays out one rendered slide
func (s *PPTXSerializer) writeSlide(slide *ppt.Slide, rendered entities.RenderedSlide, theme entities.Theme) {
	slide.SetName(fmt.Sprintf("Slide %d", rendered.Index+1))
	s.paintBackground(slide, theme)

	if rendered.Layout == entities.LayoutTitleOnly {
		s.writeTitle(slide, rendered.Title, theme, int64(2.75*emuPerInch), int64(1.5*emuPerInch), true)
		return
	}

	s.writeTitle(slide, rendered.Title, theme, titleTop, titleHeight, false)

	if theme.BackgroundStyle == entities.BackgroundBanded {
		band := slide.CreateAutoShape()
		band.SetAutoShapeType(ppt.AutoShapeRectangle).SetSolidFill(ppt.NewColor(entities.ARGB(theme.AccentColor)))
		band.SetOffsetX(marginX).SetOffsetY(bandTop).SetWidth(contentWidth).SetHeight(bandHeight)
	}

	bodyWidth := contentWidth
	if rendered.HasImage() {
		bodyWidth = contentWidth - imageWidth - imageGap

		pic := slide.CreateDrawingShape()
		pic.SetImageData(rendered.Image.Data, rendered.Image.MimeType)
		pic.SetOffsetX(marginX + bodyWidth + imageGap).SetOffsetY(bodyTop)
		pic.SetWidth(imageWidth).SetHeight(imageHeight)
	}

	body := slide.CreatePlaceholderShape(ppt.PlaceholderBody)
	body.SetPlaceholderIndex(1)
	body.SetOffsetX(marginX).SetOffsetY(bodyTop).SetWidth(bodyWidth).SetHeight(bodyHeight)

	last := len(rendered.Bullets) - 1
	for i, line := range rendered.Bullets {
		var para *ppt.Paragraph
		if i == 0 {
			para = body.GetActiveParagraph()
		} else {
			para = body.CreateParagraph()
		}
		para.SetSpaceBefore(600)

		run := para.CreateTextRun(line)
		run.GetFont().
			SetName(theme.FontFamily).
			SetSize(theme.BodySize).
			SetColor(ppt.NewColor(entities.ARGB(theme.BodyColor)))

		// The overflow indicator is not a bullet of its own
		if i == last && rendered.Truncated > 0 {
			run.GetFont().SetItalic(true)
			continue
		}
		para.SetBullet(ppt.NewBullet().SetCharBullet(bulletChar).SetColor(ppt.NewColor(entities.ARGB(theme.AccentColor))))
	}
}

func (s *PPTXSerializer) writeTitle(slide *ppt.Slide, title string, theme entities.Theme, top, height int64, centered bool) {
	shape := slide.CreatePlaceholderShape(ppt.PlaceholderTitle)
	shape.SetOffsetX(marginX).SetOffsetY(top).SetWidth(contentWidth).SetHeight(height)

	para := shape.GetActiveParagraph()
	if centered {
		para.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	}

	size := theme.TitleSize
	if centered {
		size += 8
	}

	para.CreateTextRun(title).GetFont().
		SetName(theme.FontFamily).
		SetSize(size).
		SetBold(true).
		SetColor(ppt.NewColor(entities.ARGB(theme.TitleColor)))
}

func (s *PPTXSerializer) paintBackground(slide *ppt.Slide, theme entities.Theme) {
	switch theme.BackgroundStyle {
	case entities.BackgroundSolid, entities.BackgroundBanded:
		slide.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(entities.ARGB(theme.BackgroundColor))))
	case entities.BackgroundPlain:
		// master background
	}
}

// Ensure PPTXSerializer implements ports.DeckSerializer
var _ ports.DeckSerializer = (*PPTXSerializer)(nil)
