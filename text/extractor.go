package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/tsawler/wordrefs/contentstream"
	"github.com/tsawler/wordrefs/graphicsstate"
	"github.com/tsawler/wordrefs/model"
)

const (
	// glyphWidth is the estimated advance of one glyph in em.
	glyphWidth = 0.5

	// kernSpace is the TJ adjustment, in thousandths of an em, above which
	// a space is inserted.
	kernSpace = 250.0
)

// Content is what the extractor found in one content stream.
type Content struct {
	Fragments []model.Fragment
	Images    []model.BBox

	// Underflows counts Q operators with no matching q. They are skipped.
	Underflows int
}

// Extractor extracts text from content streams
type Extractor struct {
	dec *Decoder
	gs  *graphicsstate.State
	out Content
}

// NewExtractor creates an extractor that decodes strings with dec. A nil
// dec decodes Latin-1.
func NewExtractor(dec *Decoder) *Extractor {
	if dec == nil {
		dec, _ = NewDecoder("")
	}
	return &Extractor{dec: dec}
}

// ExtractFromBytes parses and extracts text from raw content stream data
func (e *Extractor) ExtractFromBytes(data []byte) (*Content, error) {
	ops, err := contentstream.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse content stream: %w", err)
	}
	return e.Extract(ops), nil
}

// Extract runs ops from a fresh graphics state
func (e *Extractor) Extract(ops []contentstream.Operation) *Content {
	e.gs = graphicsstate.New()
	e.out = Content{}

	for _, op := range ops {
		e.process(op)
	}

	out := e.out
	e.out = Content{}
	return &out
}

func (e *Extractor) process(op contentstream.Operation) {
	if err := e.gs.Apply(op); err != nil {
		if errors.Is(err, graphicsstate.ErrStackUnderflow) {
			e.out.Underflows++
		}
		return
	}

	switch op.Operator {
	case "Tj":
		if b, ok := op.Bytes(0); ok {
			e.show(e.dec.Decode(b))
		}
	case "'":
		if b, ok := op.Bytes(0); ok {
			e.show(e.dec.Decode(b))
		}
	case "\"":
		if b, ok := op.Bytes(2); ok {
			e.show(e.dec.Decode(b))
		}
	case "TJ":
		if len(op.Operands) == 1 {
			if arr, ok := op.Operands[0].(types.Array); ok {
				e.showArray(arr)
			}
		}
	case "Do", "BI":
		e.placeImage()
	}
}

// show emits a fragment at the current text position and advances past it
func (e *Extractor) show(s string) {
	if s == "" {
		return
	}
	x, y := e.gs.TextOrigin()
	size := e.gs.EffectiveFontSize()
	n := utf8.RuneCountInString(s)

	e.out.Fragments = append(e.out.Fragments, model.Fragment{
		Text:     s,
		X0:       x,
		Y:        y,
		Width:    float64(n) * size * glyphWidth,
		Height:   size,
		FontName: e.gs.Text.FontName,
		FontSize: size,
	})
	e.gs.Advance(e.advance(s, n))
}

// advance returns the text space displacement of s
func (e *Extractor) advance(s string, runes int) float64 {
	ts := e.gs.Text
	tx := float64(runes)*(ts.FontSize*glyphWidth+ts.CharSpacing) +
		float64(strings.Count(s, " "))*ts.WordSpacing
	return tx * ts.HorizontalScaling / 100
}

// showArray emits one fragment for a TJ array
func (e *Extractor) showArray(arr types.Array) {
	var sb strings.Builder
	startX, startY := e.gs.TextOrigin()
	size := e.gs.EffectiveFontSize()

	for _, item := range arr {
		if b, ok := contentstream.StringBytes(item); ok {
			s := e.dec.Decode(b)
			sb.WriteString(s)
			e.gs.Advance(e.advance(s, utf8.RuneCountInString(s)))
			continue
		}
		var adj float64
		switch v := item.(type) {
		case types.Integer:
			adj = float64(v)
		case types.Float:
			adj = float64(v)
		default:
			continue
		}
		if -adj > kernSpace && sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteByte(' ')
		}
		e.gs.Kern(adj)
	}

	s := sb.String()
	if strings.TrimSpace(s) == "" {
		return
	}
	endX, _ := e.gs.TextOrigin()
	width := endX - startX
	if width <= 0 {
		width = float64(utf8.RuneCountInString(s)) * size * glyphWidth
	}
	e.out.Fragments = append(e.out.Fragments, model.Fragment{
		Text:     s,
		X0:       startX,
		Y:        startY,
		Width:    width,
		Height:   size,
		FontName: e.gs.Text.FontName,
		FontSize: size,
	})
}

// placeImage records the unit square mapped through the CTM
func (e *Extractor) placeImage() {
	ctm := e.gs.CTM
	p1 := ctm.Transform(model.Point{X: 0, Y: 0})
	p2 := ctm.Transform(model.Point{X: 1, Y: 1})
	e.out.Images = append(e.out.Images, model.Span(p1, p2))
}
