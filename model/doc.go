// Package model provides the intermediate representation shared by the
// supplier, the reconstructor and the statistics aggregator.
//
// A [Page] holds an ordered list of [Block] values. Text blocks carry
// [Line] values, and each line carries the positioned [Fragment] values
// that make it up, in reading order:
//
//	for _, block := range page.Blocks {
//	    if !block.IsText() {
//	        continue
//	    }
//	    for _, line := range block.Lines {
//	        fmt.Println(line.Fragments[0].X0, line.Text())
//	    }
//	}
//
// The reconstructed output unit is [Record], one per logical table row.
//
// # Geometry
//
// Geometric primitives use the PDF coordinate system (origin at the bottom
// left, Y growing upwards):
//
//   - [Point] - 2D coordinates
//   - [BBox] - bounding rectangles with union
//   - [Matrix] - affine transformations used for the CTM and text matrix
package model
