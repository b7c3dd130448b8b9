package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/wordrefs/layout"
	"github.com/tsawler/wordrefs/model"
	"github.com/tsawler/wordrefs/text"
)

// Default page size (US Letter) used when the document has no usable
// media box.
const (
	defaultWidth  = 612
	defaultHeight = 792
)

var (
	// ErrNoPages is returned when the document has no pages.
	ErrNoPages = errors.New("document has no pages")

	// ErrPageRange is returned for a page number outside the document.
	ErrPageRange = errors.New("page number out of range")
)

type options struct {
	encoding string
	layout   layout.Config
}

// Option configures a Reader
type Option func(*options)

// WithEncoding sets the single-byte encoding used to decode strings
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithLayout sets the layout tolerances
func WithLayout(cfg layout.Config) Option {
	return func(o *options) {
		o.layout = cfg
	}
}

// Reader reads pages from one PDF document.
type Reader struct {
	mu    sync.Mutex
	file  io.Closer
	ctx   *pdfmodel.Context
	dims  []types.Dim
	dec   *text.Decoder
	lay   *layout.Analyzer
	notes map[int][]string
}

// Open opens and validates the PDF at path. Failures here are fatal for a
// run: the document cannot supply any fragments.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	r, err := newReader(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// NewReader reads a PDF from rs. The caller keeps ownership of rs.
func NewReader(rs io.ReadSeeker, opts ...Option) (*Reader, error) {
	return newReader(rs, opts...)
}

func newReader(rs io.ReadSeeker, opts ...Option) (*Reader, error) {
	o := options{layout: layout.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	dec, err := text.NewDecoder(o.encoding)
	if err != nil {
		return nil, err
	}

	ctx, err := api.ReadValidateAndOptimize(rs, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	// Missing dimensions fall back to the default page size.
	dims, _ := ctx.PageDims()

	return &Reader{
		ctx:   ctx,
		dims:  dims,
		dec:   dec,
		lay:   layout.NewAnalyzer(o.layout),
		notes: make(map[int][]string),
	}, nil
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.ctx.PageCount
}

// Page returns page n (1-based) laid out into blocks.
func (r *Reader) Page(n int) (*model.Page, error) {
	if n < 1 || n > r.ctx.PageCount {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageRange, n, r.ctx.PageCount)
	}

	data, err := r.content(n)
	if err != nil {
		return nil, err
	}

	content, err := text.NewExtractor(r.dec).ExtractFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}

	var notes []string
	if content.Underflows > 0 {
		notes = append(notes, fmt.Sprintf("graphics state stack underflow (%d unmatched Q)", content.Underflows))
	}
	r.mu.Lock()
	r.notes[n] = notes
	r.mu.Unlock()

	w, h := r.size(n)
	return &model.Page{
		Number: n,
		Width:  w,
		Height: h,
		Blocks: r.lay.Analyze(content.Fragments, content.Images),
	}, nil
}

// content returns the decoded content stream of page n
func (r *Reader) content(n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rd, err := pdfcpu.ExtractPageContent(r.ctx, n)
	if err != nil {
		return nil, fmt.Errorf("page %d content: %w", n, err)
	}
	if rd == nil {
		return nil, nil
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("page %d content: %w", n, err)
	}
	return data, nil
}

func (r *Reader) size(n int) (float64, float64) {
	if n-1 < len(r.dims) {
		d := r.dims[n-1]
		if d.Width > 0 && d.Height > 0 {
			return d.Width, d.Height
		}
	}
	return defaultWidth, defaultHeight
}

// PageNotes returns the non-fatal anomalies seen while reading page n
func (r *Reader) PageNotes(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notes[n]...)
}

// Close releases the underlying file when the reader opened it
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
