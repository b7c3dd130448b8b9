// Package reader supplies the positioned text of PDF pages.
//
// Documents are read and validated with pdfcpu. Each page's content stream
// is tokenized, run through the text extractor and grouped into blocks by
// the layout analyzer:
//
//	r, err := reader.Open("refs.pdf", reader.WithEncoding("windows-1253"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	page, err := r.Page(4) // 1-based
//	for _, b := range page.Blocks {
//	    fmt.Println(b.Index, b.Kind, b.LineCount())
//	}
//
// A Reader is safe for concurrent use. Access to the pdfcpu context is
// serialized; content decoding and layout run in the caller's goroutine.
package reader
