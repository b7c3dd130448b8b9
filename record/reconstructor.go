package record

import (
	"log/slog"

	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/model"
	"github.com/tsawler/wordrefs/stats"
)

// Config holds the configuration for a Reconstructor.
type Config struct {
	// Layout is the set of column bands. A zero Layout uses
	// column.DefaultLayout.
	Layout column.Layout

	// HeaderBlocks lists block indices skipped on every page. A nil slice
	// skips block 0; an empty non-nil slice skips nothing.
	HeaderBlocks []int

	// Logger receives Debug events for dropped leading fragments.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// PageResult is what one page contributed to a run.
type PageResult struct {
	Number       int
	Records      []model.Record
	Unclassified int
	TextBlocks   int
}

// Reconstructor turns pages into records and reports every emission to an
// Aggregator. It is not safe for concurrent use.
type Reconstructor struct {
	layout column.Layout
	header map[int]bool
	agg    *stats.Aggregator
	logger *slog.Logger
}

// New creates a Reconstructor that reports to agg. A nil agg gets a private
// aggregator.
func New(cfg Config, agg *stats.Aggregator) *Reconstructor {
	layout := cfg.Layout
	if layout.IsZero() {
		layout = column.DefaultLayout()
	}
	headers := cfg.HeaderBlocks
	if headers == nil {
		headers = []int{0}
	}
	header := make(map[int]bool, len(headers))
	for _, idx := range headers {
		header[idx] = true
	}
	if agg == nil {
		agg = stats.NewAggregator()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconstructor{layout: layout, header: header, agg: agg, logger: logger}
}

// Aggregator returns the aggregator the reconstructor reports to
func (r *Reconstructor) Aggregator() *stats.Aggregator {
	return r.agg
}

// Skips reports whether the block is skipped, either because it is a header
// block or because it holds no text.
func (r *Reconstructor) Skips(b model.Block) bool {
	return r.header[b.Index] || !b.IsText()
}

// Page walks every block of the page in order and counts the page as
// processed.
func (r *Reconstructor) Page(p *model.Page) PageResult {
	res := PageResult{}
	if p == nil {
		return res
	}
	res.Number = p.Number
	for _, b := range p.Blocks {
		if r.Skips(b) {
			continue
		}
		res.TextBlocks++
		recs, dropped := r.block(p.Number, b)
		res.Records = append(res.Records, recs...)
		res.Unclassified += dropped
	}
	r.agg.PageProcessed()
	return res
}

// Block reconstructs the records of a single block. Skipped blocks yield
// nil.
func (r *Reconstructor) Block(page int, b model.Block) []model.Record {
	if r.Skips(b) {
		return nil
	}
	recs, _ := r.block(page, b)
	return recs
}

func (r *Reconstructor) block(page int, b model.Block) ([]model.Record, int) {
	var (
		out     []model.Record
		cur     model.Record
		active  = column.Word
		dropped int
	)

	emit := func() {
		r.agg.Observe(cur)
		out = append(out, cur)
		cur = model.Record{}
	}

	for li, line := range b.Lines {
		if line.IsEmpty() {
			continue
		}
		lead := line.Fragments[0]
		kind := r.layout.Classify(lead.X0)

		step := Transition(active, kind, cur.Word != "")
		if step.Emit {
			emit()
		}
		switch step.Action {
		case Append:
			f := field(&cur, step.Next)
			*f = Merge(*f, lead.Text)
		case Overwrite:
			*field(&cur, step.Next) = Merge("", lead.Text)
		case Drop:
			dropped++
			r.agg.ObserveUnclassified()
			r.logger.Debug("dropped unclassified line start",
				"page", page,
				"block", b.Index,
				"line", li,
				"x0", lead.X0,
				"text", lead.Text)
		}
		active = step.Next

		dst := field(&cur, active)
		for _, frag := range line.Fragments[1:] {
			*dst = Merge(*dst, frag.Text)
		}
	}

	if cur.Word != "" {
		emit()
	}
	return out, dropped
}

// field returns the record field backing kind. Unclassified never reaches
// here because Transition keeps the previous active field on a drop.
func field(rec *model.Record, kind column.Kind) *string {
	switch kind {
	case column.Lemma:
		return &rec.Lemma
	case column.Dictionary:
		return &rec.Dictionary
	case column.Comment:
		return &rec.Comments
	default:
		return &rec.Word
	}
}
