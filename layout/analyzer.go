package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/wordrefs/model"
)

// Config holds the tolerances used by the analyzer. All values are
// fractions of a font size or line height.
type Config struct {
	// LineTolerance is the baseline distance, as a fraction of fragment
	// height, within which fragments share a row (default 0.5).
	LineTolerance float64

	// ColumnGap is the horizontal gap, as a multiple of font size, that
	// splits a row into separate lines (default 1.0).
	ColumnGap float64

	// BlockGap is the vertical gap, as a multiple of the average line
	// height, that starts a new block (default 1.5).
	BlockGap float64

	// SpaceGap is the gap, as a fraction of height, above which a space is
	// inserted when coalescing fragments (default 0.1).
	SpaceGap float64
}

// DefaultConfig returns the default tolerances
func DefaultConfig() Config {
	return Config{
		LineTolerance: 0.5,
		ColumnGap:     1.0,
		BlockGap:      1.5,
		SpaceGap:      0.1,
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LineTolerance <= 0 {
		c.LineTolerance = d.LineTolerance
	}
	if c.ColumnGap <= 0 {
		c.ColumnGap = d.ColumnGap
	}
	if c.BlockGap <= 0 {
		c.BlockGap = d.BlockGap
	}
	if c.SpaceGap <= 0 {
		c.SpaceGap = d.SpaceGap
	}
	return c
}

// Analyzer builds blocks from fragments
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer. Zero config fields take their defaults.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config.withDefaults()}
}

// Config returns the effective configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// row is a set of lines sharing a baseline
type row struct {
	baseline float64
	height   float64
	lines    []model.Line
}

func (r row) top() float64 {
	return r.baseline + r.height
}

// Analyze returns the page's blocks in reading order with indices assigned.
func (a *Analyzer) Analyze(fragments []model.Fragment, images []model.BBox) []model.Block {
	rows := a.rows(fragments)

	var blocks []model.Block
	var cur []row
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, textBlock(cur))
			cur = nil
		}
	}
	for _, r := range rows {
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			gap := prev.baseline - r.top()
			avg := (prev.height + r.height) / 2
			if gap > a.config.BlockGap*avg {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	for _, img := range images {
		blocks = append(blocks, model.Block{Kind: model.BlockImage, BBox: img})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].BBox.Top() > blocks[j].BBox.Top()
	})
	for i := range blocks {
		blocks[i].Index = i
	}
	return blocks
}

// rows groups fragments by baseline, top to bottom
func (a *Analyzer) rows(fragments []model.Fragment) []row {
	frags := make([]model.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) != "" {
			frags = append(frags, f)
		}
	}
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X0 < frags[j].X0
	})

	var rows []row
	var members []model.Fragment
	var baseline, height float64
	end := func() {
		if len(members) > 0 {
			rows = append(rows, row{
				baseline: baseline,
				height:   height,
				lines:    a.splitRow(members),
			})
			members = nil
		}
	}
	for _, f := range frags {
		if len(members) > 0 {
			tol := a.config.LineTolerance * maxf(height, f.Height)
			if baseline-f.Y > tol {
				end()
			}
		}
		if len(members) == 0 {
			baseline, height = f.Y, f.Height
		}
		height = maxf(height, f.Height)
		members = append(members, f)
	}
	end()
	return rows
}

// splitRow orders a row left to right and cuts it at wide gaps
func (a *Analyzer) splitRow(frags []model.Fragment) []model.Line {
	sort.SliceStable(frags, func(i, j int) bool {
		return frags[i].X0 < frags[j].X0
	})

	var lines []model.Line
	var cur []model.Fragment
	for _, f := range frags {
		if n := len(cur); n > 0 {
			prev := cur[n-1]
			gap := f.X0 - prev.Right()
			if gap > a.config.ColumnGap*maxf(prev.FontSize, f.FontSize) {
				lines = append(lines, model.Line{Fragments: cur})
				cur = nil
			}
		}
		cur = a.appendFragment(cur, f)
	}
	if len(cur) > 0 {
		lines = append(lines, model.Line{Fragments: cur})
	}
	return lines
}

// appendFragment adds f to the line, coalescing it into the previous
// fragment when both use the same font and size. The joint holds at most
// one space: padding at the joint or a gap wider than SpaceGap yields one.
func (a *Analyzer) appendFragment(line []model.Fragment, f model.Fragment) []model.Fragment {
	n := len(line)
	if n == 0 {
		return append(line, f)
	}
	prev := &line[n-1]
	if prev.FontName != f.FontName || prev.FontSize != f.FontSize {
		return append(line, f)
	}
	gap := f.X0 - prev.Right()
	left := strings.TrimRight(prev.Text, " ")
	right := strings.TrimLeft(f.Text, " ")
	padded := left != prev.Text || right != f.Text
	if left != "" && right != "" && (padded || gap > a.config.SpaceGap*maxf(prev.Height, f.Height)) {
		left += " "
	}
	prev.Text = left + right
	if r := f.Right(); r > prev.Right() {
		prev.Width = r - prev.X0
	}
	prev.Height = maxf(prev.Height, f.Height)
	return line
}

// textBlock builds a text block from consecutive rows
func textBlock(rows []row) model.Block {
	b := model.Block{Kind: model.BlockText}
	for _, r := range rows {
		for _, l := range r.lines {
			b.Lines = append(b.Lines, l)
			b.BBox = b.BBox.Union(l.BBox())
		}
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
