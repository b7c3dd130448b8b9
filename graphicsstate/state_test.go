package graphicsstate

import (
	"errors"
	"math"
	"testing"

	"github.com/tsawler/wordrefs/contentstream"
	"github.com/tsawler/wordrefs/model"
)

func apply(t *testing.T, s *State, stream string) {
	t.Helper()
	ops, err := contentstream.Parse([]byte(stream))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, op := range ops {
		if err := s.Apply(op); err != nil {
			t.Fatalf("Apply(%s) failed: %v", op.Operator, err)
		}
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewState(t *testing.T) {
	s := New()
	if !s.CTM.IsIdentity() {
		t.Errorf("CTM = %v, want identity", s.CTM)
	}
	if s.Text.FontSize != 12 || s.Text.HorizontalScaling != 100 {
		t.Errorf("text defaults = %+v", s.Text)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}

func TestSaveRestore(t *testing.T) {
	s := New()
	apply(t, s, "q 2 0 0 2 10 10 cm /F1 9 Tf")
	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", s.Depth())
	}
	apply(t, s, "Q")
	if !s.CTM.IsIdentity() {
		t.Errorf("CTM after Q = %v, want identity", s.CTM)
	}
	if s.Text.FontName != "" || s.Text.FontSize != 12 {
		t.Errorf("text state after Q = %+v", s.Text)
	}
}

func TestRestoreUnderflow(t *testing.T) {
	s := New()
	if err := s.Restore(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Restore() = %v, want ErrStackUnderflow", err)
	}
	err := s.Apply(contentstream.Operation{Operator: "Q"})
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Apply(Q) = %v, want ErrStackUnderflow", err)
	}
}

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		x, y   float64
	}{
		{"td", "BT 30.5 700 Td ET", 30.5, 700},
		{"tm", "BT 1 0 0 1 102.4 650 Tm ET", 102.4, 650},
		{"td accumulates", "BT 30 700 Td 72 -12 Td", 102, 688},
		{"cm translate", "1 0 0 1 10 20 cm BT 30 700 Td", 40, 720},
		{"cm scale", "0.5 0 0 0.5 0 0 cm BT 60 1000 Td", 30, 500},
		{"TD sets leading", "BT 30 700 TD 0 -14 TD T*", 30, 672},
		{"TL then T*", "BT 14 TL 30 700 Td T*", 30, 686},
		{"rise", "BT 5 Ts 30 700 Td", 30, 705},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			apply(t, s, tt.stream)
			x, y := s.TextOrigin()
			if !near(x, tt.x) || !near(y, tt.y) {
				t.Errorf("TextOrigin() = (%v, %v), want (%v, %v)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestBeginTextResetsMatrices(t *testing.T) {
	s := New()
	apply(t, s, "BT 100 100 Td ET BT")
	if !s.Text.Matrix.IsIdentity() || !s.Text.LineMatrix.IsIdentity() {
		t.Errorf("matrices after BT = %v / %v", s.Text.Matrix, s.Text.LineMatrix)
	}
}

func TestAdvanceAndKern(t *testing.T) {
	s := New()
	apply(t, s, "BT /F1 10 Tf 30 700 Td")
	s.Advance(20)
	if x, _ := s.TextOrigin(); !near(x, 50) {
		t.Errorf("x after Advance = %v, want 50", x)
	}
	s.Kern(-1000)
	if x, _ := s.TextOrigin(); !near(x, 60) {
		t.Errorf("x after Kern = %v, want 60", x)
	}
	// Advance does not move the line start.
	apply(t, s, "0 -12 Td")
	if x, y := s.TextOrigin(); !near(x, 30) || !near(y, 688) {
		t.Errorf("origin after Td = (%v, %v), want (30, 688)", x, y)
	}
}

func TestTextParameters(t *testing.T) {
	s := New()
	apply(t, s, "/F2 8.5 Tf 1 Tc 2 Tw 90 Tz 3 Tr")
	if s.Text.FontName != "F2" || s.Text.FontSize != 8.5 {
		t.Errorf("font = %q %v", s.Text.FontName, s.Text.FontSize)
	}
	if s.Text.CharSpacing != 1 || s.Text.WordSpacing != 2 || s.Text.HorizontalScaling != 90 {
		t.Errorf("spacing = %+v", s.Text)
	}
	if s.Text.RenderingMode != 3 {
		t.Errorf("RenderingMode = %d, want 3", s.Text.RenderingMode)
	}
	apply(t, s, "BT 14 TL 0 700 Td 4 5 (x) \"")
	if s.Text.WordSpacing != 4 || s.Text.CharSpacing != 5 {
		t.Errorf("\" operator spacing = %v %v", s.Text.WordSpacing, s.Text.CharSpacing)
	}
	if _, y := s.TextOrigin(); !near(y, 686) {
		t.Errorf("y after \" = %v, want 686", y)
	}
}

func TestEffectiveFontSize(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   float64
	}{
		{"plain", "BT /F1 10 Tf", 10},
		{"tm scaled", "BT /F1 1 Tf 9 0 0 9 0 0 Tm", 9},
		{"ctm scaled", "2 0 0 2 0 0 cm BT /F1 6 Tf", 12},
	}
	for _, tt := range tests {
		s := New()
		apply(t, s, tt.stream)
		if got := s.EffectiveFontSize(); !near(got, tt.want) {
			t.Errorf("%s: EffectiveFontSize() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMalformedOperandsIgnored(t *testing.T) {
	s := New()
	for _, op := range []contentstream.Operation{
		{Operator: "cm"},
		{Operator: "Tm"},
		{Operator: "Td"},
		{Operator: "Tf"},
		{Operator: "Tc"},
	} {
		if err := s.Apply(op); err != nil {
			t.Errorf("Apply(%s) = %v", op.Operator, err)
		}
	}
	if !s.CTM.IsIdentity() || s.Text.Matrix != model.Identity() {
		t.Error("state changed on malformed operands")
	}
}
