// Package layout groups positioned fragments into the lines and blocks of a
// page.
//
// Fragments whose baselines agree within a tolerance form a row. A row is
// split into separate lines wherever the horizontal gap between neighbours
// is wider than a multiple of the font size, so each cell of a table row
// becomes its own line. Consecutive rows separated by a large vertical gap
// start a new block. Image placements become non-text blocks interleaved
// by their top edge.
//
//	a := layout.NewAnalyzer(layout.DefaultConfig())
//	blocks := a.Analyze(content.Fragments, content.Images)
//
// Coordinates follow PDF conventions: Y grows upwards, so reading order is
// descending Y.
package layout
