// Package text extracts positioned text fragments from PDF content streams.
//
// The [Extractor] runs parsed operations through a graphics state and turns
// every text-showing operator into a [model.Fragment] whose X0 and Y are in
// page coordinates:
//
//	dec, _ := text.NewDecoder("windows-1253")
//	ex := text.NewExtractor(dec)
//	content, err := ex.ExtractFromBytes(data)
//	for _, f := range content.Fragments {
//	    fmt.Printf("%.2f %q\n", f.X0, f.Text)
//	}
//
// A Tj produces one fragment; a TJ array produces one fragment for the
// whole array, with a space where a kerning gap is wider than a quarter em.
//
// # Decoding
//
// Font programs are not read. String bytes are decoded with a [Decoder]
// built on golang.org/x/text: a UTF-16BE byte order mark selects UTF-16,
// otherwise the configured single-byte encoding (looked up in the IANA
// index) is used. Decoded text is NFC normalized.
//
// Widths are estimated from the rune count and the effective font size.
//
// # Images
//
// Image placements (the Do operator and inline images) are reported as
// bounding boxes so callers can keep non-text regions in reading order.
package text
