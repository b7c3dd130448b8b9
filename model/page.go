package model

import "strings"

// Fragment is a run of text with a known position on the page.
// X0 is the left edge in page coordinates and Y is the baseline.
type Fragment struct {
	Text     string
	X0       float64
	Y        float64
	Width    float64
	Height   float64
	FontName string
	FontSize float64
}

// Right returns the right edge of the fragment
func (f Fragment) Right() float64 {
	return f.X0 + f.Width
}

// BBox returns the bounding box of the fragment
func (f Fragment) BBox() BBox {
	return BBox{X: f.X0, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Line is an ordered sequence of fragments sharing a baseline and a column.
type Line struct {
	Fragments []Fragment
}

// IsEmpty returns true if the line has no fragments
func (l Line) IsEmpty() bool {
	return len(l.Fragments) == 0
}

// Text joins the fragment texts with single spaces
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Fragments))
	for _, f := range l.Fragments {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// BBox returns the union of the fragment boxes
func (l Line) BBox() BBox {
	var b BBox
	for _, f := range l.Fragments {
		b = b.Union(f.BBox())
	}
	return b
}

// BlockKind distinguishes text blocks from non-text content
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

// String returns a string representation of the block kind
func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is a contiguous region of a page in reading order.
type Block struct {
	// Index is the block's position on the page (0-based, reading order)
	Index int

	// Kind reports whether the block holds text
	Kind BlockKind

	// BBox is the bounding box of the block
	BBox BBox

	// Lines are the block's text lines (nil for image blocks)
	Lines []Line
}

// IsText returns true for text blocks
func (b Block) IsText() bool {
	return b.Kind == BlockText
}

// LineCount returns the number of lines in the block
func (b Block) LineCount() int {
	return len(b.Lines)
}

// Page is one physical page of the source document.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Blocks []Block // Blocks in reading order
}

// BlockCount returns the number of blocks on the page
func (p *Page) BlockCount() int {
	if p == nil {
		return 0
	}
	return len(p.Blocks)
}

// FragmentCount returns the total number of text fragments on the page
func (p *Page) FragmentCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			n += len(l.Fragments)
		}
	}
	return n
}

// Text returns the page's text lines in reading order, one per line.
// Image blocks contribute nothing.
func (p *Page) Text() string {
	if p == nil {
		return ""
	}
	var lines []string
	for _, b := range p.Blocks {
		if !b.IsText() {
			continue
		}
		for _, l := range b.Lines {
			if t := l.Text(); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return strings.Join(lines, "\n")
}
