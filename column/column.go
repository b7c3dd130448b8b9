// Package column classifies horizontal positions into the fixed column bands
// of a tabular page layout.
//
// A [Layout] is an ordered set of closed intervals on x0, one per [Kind].
// Classification is a total function: an x0 outside every band maps to
// [Unclassified], which is an expected outcome for stray fragments.
//
//	layout := column.DefaultLayout()
//	switch layout.Classify(fragment.X0) {
//	case column.Word:
//	    // start of a new row
//	}
package column

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a column band. The order of the constants is the left-to-right
// order of the columns on the page.
type Kind int

const (
	Word Kind = iota
	Lemma
	Dictionary
	Comment

	// Unclassified is returned for positions outside every band.
	Unclassified Kind = -1
)

// Kinds lists the classified kinds in left-to-right order.
var Kinds = []Kind{Word, Lemma, Dictionary, Comment}

// String returns the field name of the kind
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Lemma:
		return "lemma"
	case Dictionary:
		return "dictionary"
	case Comment:
		return "comment"
	default:
		return "unclassified"
	}
}

// ParseKind maps a band name to its kind. Matching is case-insensitive and
// accepts "comments" as an alias for "comment".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "word":
		return Word, nil
	case "lemma":
		return Lemma, nil
	case "dictionary":
		return Dictionary, nil
	case "comment", "comments":
		return Comment, nil
	default:
		return Unclassified, fmt.Errorf("%w: unknown band name %q", ErrInvalidBand, name)
	}
}

// Band is a closed interval [Lo, Hi] on x0 mapped to a kind.
type Band struct {
	Kind Kind
	Lo   float64
	Hi   float64
}

// Contains reports whether x0 lies within the band, inclusive on both ends
func (b Band) Contains(x0 float64) bool {
	return x0 >= b.Lo && x0 <= b.Hi
}

// String returns a readable form of the band
func (b Band) String() string {
	return fmt.Sprintf("%s[%.2f, %.2f]", b.Kind, b.Lo, b.Hi)
}

// Layout validation errors
var (
	ErrInvalidBand = errors.New("invalid column band")
	ErrMissingBand = errors.New("missing column band")
	ErrOrder       = errors.New("column bands out of order")
	ErrOverlap     = errors.New("column bands overlap")
)

// Layout is a validated set of bands, one per kind, in ascending order.
type Layout struct {
	bands []Band
}

// NewLayout validates the bands and returns a layout. Every kind must appear
// exactly once, each band must satisfy Lo <= Hi, and the bands must be
// ordered Word < Lemma < Dictionary < Comment without overlapping.
func NewLayout(bands ...Band) (Layout, error) {
	if err := Validate(bands); err != nil {
		return Layout{}, err
	}
	out := make([]Band, len(bands))
	copy(out, bands)
	return Layout{bands: out}, nil
}

// MustLayout is like NewLayout but panics on invalid bands.
func MustLayout(bands ...Band) Layout {
	l, err := NewLayout(bands...)
	if err != nil {
		panic(err)
	}
	return l
}

// DefaultLayout returns the bands of the reference word-list table, where
// each column starts within one coordinate unit of a fixed left edge.
func DefaultLayout() Layout {
	return MustLayout(
		Band{Kind: Word, Lo: 30.00, Hi: 30.99},
		Band{Kind: Lemma, Lo: 102.00, Hi: 102.99},
		Band{Kind: Dictionary, Lo: 185.00, Hi: 185.99},
		Band{Kind: Comment, Lo: 232.00, Hi: 232.99},
	)
}

// Validate checks a candidate band set without building a layout.
func Validate(bands []Band) error {
	seen := make(map[Kind]bool, len(Kinds))
	for _, b := range bands {
		if b.Kind < Word || b.Kind > Comment {
			return fmt.Errorf("%w: kind %d", ErrInvalidBand, int(b.Kind))
		}
		if b.Lo > b.Hi {
			return fmt.Errorf("%w: %s has lo > hi", ErrInvalidBand, b)
		}
		if seen[b.Kind] {
			return fmt.Errorf("%w: %s defined twice", ErrInvalidBand, b.Kind)
		}
		seen[b.Kind] = true
	}
	for _, k := range Kinds {
		if !seen[k] {
			return fmt.Errorf("%w: %s", ErrMissingBand, k)
		}
	}

	for i := 1; i < len(bands); i++ {
		prev, curr := bands[i-1], bands[i]
		if curr.Kind <= prev.Kind {
			return fmt.Errorf("%w: %s listed after %s", ErrOrder, curr.Kind, prev.Kind)
		}
		if curr.Lo <= prev.Hi {
			if curr.Hi < prev.Lo {
				return fmt.Errorf("%w: %s lies left of %s", ErrOrder, curr, prev)
			}
			return fmt.Errorf("%w: %s and %s", ErrOverlap, prev, curr)
		}
	}
	return nil
}

// Validate re-checks the layout's bands. A zero Layout fails with
// ErrMissingBand.
func (l Layout) Validate() error {
	return Validate(l.bands)
}

// Classify maps x0 to the band containing it, or Unclassified.
func (l Layout) Classify(x0 float64) Kind {
	for _, b := range l.bands {
		if b.Contains(x0) {
			return b.Kind
		}
	}
	return Unclassified
}

// Bands returns a copy of the layout's bands in ascending order
func (l Layout) Bands() []Band {
	out := make([]Band, len(l.bands))
	copy(out, l.bands)
	return out
}

// Band returns the band for a kind
func (l Layout) Band(k Kind) (Band, bool) {
	for _, b := range l.bands {
		if b.Kind == k {
			return b, true
		}
	}
	return Band{}, false
}

// IsZero reports whether the layout was never initialized
func (l Layout) IsZero() bool {
	return len(l.bands) == 0
}
