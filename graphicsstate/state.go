package graphicsstate

import (
	"errors"
	"math"

	"github.com/tsawler/wordrefs/contentstream"
	"github.com/tsawler/wordrefs/model"
)

// ErrStackUnderflow is returned by Restore when no state was saved.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// TextState holds the text parameters set inside BT/ET.
type TextState struct {
	FontName          string
	FontSize          float64
	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64 // percent
	Leading           float64
	Rise              float64
	RenderingMode     int

	Matrix     model.Matrix // Tm
	LineMatrix model.Matrix // Tlm
}

// State is the graphics state of one content stream.
type State struct {
	CTM  model.Matrix
	Text TextState

	saved []saved
}

type saved struct {
	ctm  model.Matrix
	text TextState
}

// New returns the initial graphics state
func New() *State {
	return &State{
		CTM: model.Identity(),
		Text: TextState{
			FontSize:          12,
			HorizontalScaling: 100,
			Matrix:            model.Identity(),
			LineMatrix:        model.Identity(),
		},
	}
}

// Depth returns the number of saved states
func (s *State) Depth() int {
	return len(s.saved)
}

// Save pushes the current state (q operator)
func (s *State) Save() {
	s.saved = append(s.saved, saved{ctm: s.CTM, text: s.Text})
}

// Restore pops the last saved state (Q operator)
func (s *State) Restore() error {
	if len(s.saved) == 0 {
		return ErrStackUnderflow
	}
	top := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.CTM = top.ctm
	s.Text = top.text
	return nil
}

// Concat premultiplies the CTM by m (cm operator)
func (s *State) Concat(m model.Matrix) {
	s.CTM = m.Multiply(s.CTM)
}

// BeginText resets the text matrices (BT operator)
func (s *State) BeginText() {
	s.Text.Matrix = model.Identity()
	s.Text.LineMatrix = model.Identity()
}

// SetTextMatrix sets both text matrices (Tm operator)
func (s *State) SetTextMatrix(m model.Matrix) {
	s.Text.Matrix = m
	s.Text.LineMatrix = m
}

// MoveText starts a new line offset from the current one (Td operator)
func (s *State) MoveText(tx, ty float64) {
	s.Text.LineMatrix = model.Translate(tx, ty).Multiply(s.Text.LineMatrix)
	s.Text.Matrix = s.Text.LineMatrix
}

// NextLine moves down by the leading (T* operator)
func (s *State) NextLine() {
	s.MoveText(0, -s.Text.Leading)
}

// Advance moves the text position along the baseline by tx text space
// units, as after showing a glyph run.
func (s *State) Advance(tx float64) {
	s.Text.Matrix = model.Translate(tx, 0).Multiply(s.Text.Matrix)
}

// Kern applies a TJ array adjustment given in thousandths of text space.
func (s *State) Kern(adj float64) {
	s.Advance(-adj / 1000 * s.Text.FontSize * s.Text.HorizontalScaling / 100)
}

// TextRenderingMatrix returns Tm x CTM
func (s *State) TextRenderingMatrix() model.Matrix {
	return s.Text.Matrix.Multiply(s.CTM)
}

// TextOrigin returns the current text position in page coordinates,
// including the text rise.
func (s *State) TextOrigin() (x, y float64) {
	p := s.TextRenderingMatrix().Transform(model.Point{X: 0, Y: s.Text.Rise})
	return p.X, p.Y
}

// EffectiveFontSize returns the font size scaled by the text rendering
// matrix. Documents often set a size of 1 and scale through Tm.
func (s *State) EffectiveFontSize() float64 {
	m := s.TextRenderingMatrix()
	scale := math.Hypot(m[2], m[3])
	if scale == 0 {
		scale = math.Hypot(m[0], m[1])
	}
	return s.Text.FontSize * scale
}

// Apply updates the state for op. Operators that do not affect the state
// are ignored. Malformed operands are skipped.
func (s *State) Apply(op contentstream.Operation) error {
	switch op.Operator {
	case "q":
		s.Save()
	case "Q":
		return s.Restore()
	case "cm":
		if v, ok := op.Numbers(6); ok {
			s.Concat(model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]})
		}
	case "BT":
		s.BeginText()
	case "Tf":
		if name, ok := op.Name(0); ok {
			s.Text.FontName = name
		}
		if size, ok := op.Number(1); ok {
			s.Text.FontSize = size
		}
	case "Tc":
		s.setNumber(op, &s.Text.CharSpacing)
	case "Tw":
		s.setNumber(op, &s.Text.WordSpacing)
	case "Tz":
		s.setNumber(op, &s.Text.HorizontalScaling)
	case "TL":
		s.setNumber(op, &s.Text.Leading)
	case "Ts":
		s.setNumber(op, &s.Text.Rise)
	case "Tr":
		if v, ok := op.Number(0); ok {
			s.Text.RenderingMode = int(v)
		}
	case "Tm":
		if v, ok := op.Numbers(6); ok {
			s.SetTextMatrix(model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]})
		}
	case "Td":
		if v, ok := op.Numbers(2); ok {
			s.MoveText(v[0], v[1])
		}
	case "TD":
		if v, ok := op.Numbers(2); ok {
			s.Text.Leading = -v[1]
			s.MoveText(v[0], v[1])
		}
	case "T*":
		s.NextLine()
	case "'":
		s.NextLine()
	case "\"":
		if v, ok := op.Numbers(2); ok {
			s.Text.WordSpacing = v[0]
			s.Text.CharSpacing = v[1]
		}
		s.NextLine()
	}
	return nil
}

func (s *State) setNumber(op contentstream.Operation, dst *float64) {
	if v, ok := op.Number(0); ok {
		*dst = v
	}
}
