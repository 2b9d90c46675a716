package images

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

const (
	placeholderWidth  = 800
	placeholderHeight = 600
	defaultAccent     = "95A5A6"
)

// PlaceholderLookup draws a generated image for a hint. The same hint and
// accent color always give the same PNG bytes.
type PlaceholderLookup struct {
	font *truetype.Font
}

// NewPlaceholderLookup creates a placeholder lookup using the embedded Go font
func NewPlaceholderLookup() (*PlaceholderLookup, error) {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	return &PlaceholderLookup{font: font}, nil
}

// Name returns "placeholder"
func (p *PlaceholderLookup) Name() string {
	return "placeholder"
}

// Find renders the placeholder image
func (p *PlaceholderLookup) Find(ctx context.Context, query entities.ImageQuery) (*entities.SlideImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accent := strings.TrimPrefix(query.AccentColor, "#")
	if !entities.IsHexColor(accent) {
		accent = defaultAccent
	}
	r, g, b := rgb(accent)

	dc := gg.NewContext(placeholderWidth, placeholderHeight)

	// Tinted background
	dc.SetRGB(tint(r), tint(g), tint(b))
	dc.Clear()

	// Deterministic decoration derived from the hint
	seed := hintSeed(query.Hint)
	dc.SetRGBA(r, g, b, 0.18)
	for i := 0; i < 6; i++ {
		x := float64(60 + (seed>>(i*5))%680)
		y := float64(60 + (seed>>(i*5+3))%480)
		radius := float64(20 + (seed>>(i*4))%60)
		dc.DrawCircle(x, y, radius)
		dc.Fill()
	}

	// Border and accent bar
	dc.SetRGB(r, g, b)
	dc.SetLineWidth(4)
	dc.DrawRectangle(20, 20, placeholderWidth-40, placeholderHeight-40)
	dc.Stroke()
	dc.DrawRectangle(20, placeholderHeight-60, placeholderWidth-40, 40)
	dc.Fill()

	// Hint text, wrapped and centered
	text := SearchQuery(query.Hint)
	dc.SetFontFace(truetype.NewFace(p.font, &truetype.Options{Size: 40}))
	dc.SetRGB(r*0.6, g*0.6, b*0.6)

	lines := dc.WordWrap(text, placeholderWidth-160)
	if len(lines) > 4 {
		lines = lines[:4]
	}
	lineHeight := 52.0
	top := float64(placeholderHeight)/2 - lineHeight*float64(len(lines)-1)/2 - 20
	for i, line := range lines {
		dc.DrawStringAnchored(line, placeholderWidth/2, top+float64(i)*lineHeight, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding placeholder: %w", err)
	}

	return &entities.SlideImage{Data: buf.Bytes(), MimeType: "image/png", Source: p.Name()}, nil
}

// rgb converts a 6-digit hex color to 0..1 components
func rgb(hex string) (float64, float64, float64) {
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0.5, 0.5, 0.5
	}
	return float64(value>>16&0xFF) / 255, float64(value>>8&0xFF) / 255, float64(value&0xFF) / 255
}

// tint mixes a component 85% toward white
func tint(c float64) float64 {
	return c + (1-c)*0.85
}

func hintSeed(hint string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(hint))))
	return h.Sum64()
}

// Ensure PlaceholderLookup implements ports.ImageLookup
var _ ports.ImageLookup = (*PlaceholderLookup)(nil)
