package model

import "testing"

func TestMatrixMultiply(t *testing.T) {
	// Translate then scale: the point moves, then the result is scaled.
	m := Translate(10, 20).Multiply(Scale(2, 2))
	p := m.Transform(Point{X: 1, Y: 1})
	if p.X != 22 || p.Y != 42 {
		t.Errorf("got (%v, %v), want (22, 42)", p.X, p.Y)
	}

	if !Identity().Multiply(Identity()).IsIdentity() {
		t.Error("identity × identity should be identity")
	}
}

func TestBBoxUnion(t *testing.T) {
	var b BBox
	b = b.Union(NewBBox(10, 10, 5, 5))
	if b != NewBBox(10, 10, 5, 5) {
		t.Errorf("union with zero box = %+v", b)
	}

	b = b.Union(NewBBox(0, 12, 2, 10))
	want := BBox{X: 0, Y: 10, Width: 15, Height: 12}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestSpan(t *testing.T) {
	got := Span(Point{X: 10, Y: 2}, Point{X: 4, Y: 8})
	want := BBox{X: 4, Y: 2, Width: 6, Height: 6}
	if got != want {
		t.Errorf("Span() = %+v, want %+v", got, want)
	}
	if got.Right() != 10 || got.Top() != 8 {
		t.Errorf("Right(), Top() = %v, %v; want 10, 8", got.Right(), got.Top())
	}
}

func TestLineText(t *testing.T) {
	line := Line{Fragments: []Fragment{
		{Text: " ΑΒΑ "},
		{Text: ""},
		{Text: "ΦΟΙ"},
	}}
	if got := line.Text(); got != "ΑΒΑ ΦΟΙ" {
		t.Errorf("Text() = %q, want %q", got, "ΑΒΑ ΦΟΙ")
	}
	if line.IsEmpty() {
		t.Error("line with fragments reported empty")
	}
	if !(Line{}).IsEmpty() {
		t.Error("zero line should be empty")
	}
}

func TestPageCounts(t *testing.T) {
	var nilPage *Page
	if nilPage.BlockCount() != 0 || nilPage.FragmentCount() != 0 {
		t.Error("nil page should report zero counts")
	}

	p := &Page{Blocks: []Block{
		{Kind: BlockText, Lines: []Line{{Fragments: make([]Fragment, 2)}, {Fragments: make([]Fragment, 1)}}},
		{Kind: BlockImage},
	}}
	if p.BlockCount() != 2 {
		t.Errorf("BlockCount() = %d, want 2", p.BlockCount())
	}
	if p.FragmentCount() != 3 {
		t.Errorf("FragmentCount() = %d, want 3", p.FragmentCount())
	}
	if p.Blocks[1].IsText() {
		t.Error("image block reported as text")
	}
	if BlockImage.String() != "image" {
		t.Errorf("BlockImage.String() = %q", BlockImage.String())
	}
}

func TestPageText(t *testing.T) {
	var nilPage *Page
	if nilPage.Text() != "" {
		t.Error("nil page should have no text")
	}

	p := &Page{Blocks: []Block{
		{Kind: BlockText, Lines: []Line{
			{Fragments: []Fragment{{Text: "ΑΒΑ"}, {Text: " ΦΟΙ "}}},
			{Fragments: []Fragment{{Text: "  "}}},
		}},
		{Kind: BlockImage},
		{Kind: BlockText, Lines: []Line{{Fragments: []Fragment{{Text: "12"}}}}},
	}}
	if got, want := p.Text(), "ΑΒΑ ΦΟΙ\n12"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}
