// Package graphicsstate tracks the parts of the PDF graphics state that
// position text on a page.
//
// The main type is State, which holds the current transformation matrix
// (CTM), a save/restore stack for q and Q, and a TextState with the font,
// spacing and text matrices.
//
//	gs := graphicsstate.New()
//	for _, op := range ops {
//	    if err := gs.Apply(op); err != nil {
//	        // stack underflow on an unbalanced Q
//	    }
//	}
//	x, y := gs.TextOrigin()
//
// Apply handles the state operators (q, Q, cm, BT, ET, Tf, Tc, Tw, Tz,
// TL, Ts, Tr, Tm, Td, TD, T*) and ignores everything else, so callers can
// pass every operation of a stream through it and handle text showing
// themselves.
package graphicsstate
