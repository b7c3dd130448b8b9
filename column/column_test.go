package column

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultLayoutClassify(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		x0   float64
		want Kind
	}{
		{30.00, Word},
		{30.5, Word},
		{30.99, Word},
		{31.0, Unclassified},
		{29.99, Unclassified},
		{102.5, Lemma},
		{185.5, Dictionary},
		{185.99, Dictionary},
		{232.5, Comment},
		{232.00, Comment},
		{233.0, Unclassified},
		{0, Unclassified},
		{-50, Unclassified},
		{math.Inf(1), Unclassified},
		{math.NaN(), Unclassified},
	}

	for _, tt := range tests {
		if got := layout.Classify(tt.x0); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.x0, got, tt.want)
		}
	}
}

func TestClassifyIsPartitionOrMiss(t *testing.T) {
	layout := DefaultLayout()
	bands := layout.Bands()

	// Sweep the coordinate range; each x0 must land in at most one band and
	// Classify must agree with that band.
	for x := 0.0; x <= 300.0; x += 0.01 {
		matches := 0
		var matched Kind = Unclassified
		for _, b := range bands {
			if b.Contains(x) {
				matches++
				matched = b.Kind
			}
		}
		if matches > 1 {
			t.Fatalf("x0=%v matched %d bands", x, matches)
		}
		if got := layout.Classify(x); got != matched {
			t.Fatalf("Classify(%v) = %v, want %v", x, got, matched)
		}
	}
}

func TestValidate(t *testing.T) {
	good := []Band{
		{Kind: Word, Lo: 10, Hi: 20},
		{Kind: Lemma, Lo: 30, Hi: 40},
		{Kind: Dictionary, Lo: 50, Hi: 60},
		{Kind: Comment, Lo: 70, Hi: 80},
	}

	tests := []struct {
		name   string
		mutate func([]Band) []Band
		want   error
	}{
		{"valid", func(b []Band) []Band { return b }, nil},
		{"lo greater than hi", func(b []Band) []Band { b[1].Lo = 45; return b }, ErrInvalidBand},
		{"missing comment", func(b []Band) []Band { return b[:3] }, ErrMissingBand},
		{"duplicate kind", func(b []Band) []Band { b[3].Kind = Dictionary; return b }, ErrInvalidBand},
		{"unknown kind", func(b []Band) []Band { b[0].Kind = Unclassified; return b }, ErrInvalidBand},
		{"overlap", func(b []Band) []Band { b[2].Lo = 40; return b }, ErrOverlap},
		{"listed out of order", func(b []Band) []Band { b[0], b[1] = b[1], b[0]; return b }, ErrOrder},
		{"positions descending", func(b []Band) []Band {
			b[1].Lo, b[1].Hi = 0, 5
			return b
		}, ErrOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := make([]Band, len(good))
			copy(bands, good)
			err := Validate(tt.mutate(bands))
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewLayoutCopiesBands(t *testing.T) {
	bands := []Band{
		{Kind: Word, Lo: 10, Hi: 20},
		{Kind: Lemma, Lo: 30, Hi: 40},
		{Kind: Dictionary, Lo: 50, Hi: 60},
		{Kind: Comment, Lo: 70, Hi: 80},
	}
	layout, err := NewLayout(bands...)
	if err != nil {
		t.Fatal(err)
	}
	bands[0].Lo = 1000

	if got := layout.Classify(15); got != Word {
		t.Errorf("layout changed after caller mutation: Classify(15) = %v", got)
	}
	b, ok := layout.Band(Comment)
	if !ok || b.Lo != 70 {
		t.Errorf("Band(Comment) = %+v, %v", b, ok)
	}
	if layout.IsZero() {
		t.Error("validated layout reported zero")
	}
	if !(Layout{}).IsZero() {
		t.Error("zero layout not reported zero")
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"word":       Word,
		"Lemma":      Lemma,
		" dictionary": Dictionary,
		"comments":   Comment,
		"COMMENT":    Comment,
	}
	for name, want := range tests {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}

	if _, err := ParseKind("page"); !errors.Is(err, ErrInvalidBand) {
		t.Errorf("ParseKind(page) error = %v, want ErrInvalidBand", err)
	}
}

func TestMustLayoutPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid layout")
		}
	}()
	MustLayout(Band{Kind: Word, Lo: 1, Hi: 2})
}

func TestLayoutValidateMethod(t *testing.T) {
	if err := DefaultLayout().Validate(); err != nil {
		t.Errorf("DefaultLayout().Validate() = %v", err)
	}
	if err := (Layout{}).Validate(); !errors.Is(err, ErrMissingBand) {
		t.Errorf("zero Layout Validate() = %v, want ErrMissingBand", err)
	}
}
