package wordlist

import (
	"fmt"
	"regexp"
	"strings"
)

// Default patterns for the 2-8 letter accepted-word list.
const (
	DefaultHeaderPattern     = `ΑΠΟΔΕΚΤΕΣ ΛΕΞΕΙΣ 2-8 ΓΡΑΜΜΑΤΩΝ`
	DefaultDatePattern       = `[Α-Ωα-ωΊΪΌΆΈΎΫΉΏίϊΐόάέύϋΰήώ]+\s+\d{4}`
	DefaultPageNumberPattern = `\d{1,3}`
)

// Cleaner removes page furniture from page text. The header is removed
// first, then dates, then page numbers.
type Cleaner struct {
	header     *regexp.Regexp
	date       *regexp.Regexp
	pageNumber *regexp.Regexp
}

// NewCleaner compiles the patterns. An empty pattern takes its default.
func NewCleaner(header, date, pageNumber string) (*Cleaner, error) {
	c := &Cleaner{}
	for _, p := range []struct {
		name, expr, def string
		dst             **regexp.Regexp
	}{
		{"header", header, DefaultHeaderPattern, &c.header},
		{"date", date, DefaultDatePattern, &c.date},
		{"page number", pageNumber, DefaultPageNumberPattern, &c.pageNumber},
	} {
		expr := p.expr
		if expr == "" {
			expr = p.def
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%s pattern: %w", p.name, err)
		}
		*p.dst = re
	}
	return c, nil
}

// DefaultCleaner returns a cleaner with the default patterns.
func DefaultCleaner() *Cleaner {
	c, err := NewCleaner("", "", "")
	if err != nil {
		panic(err)
	}
	return c
}

// Clean strips the header, dates and page numbers from text.
func (c *Cleaner) Clean(text string) string {
	text = c.header.ReplaceAllString(text, "")
	text = c.date.ReplaceAllString(text, "")
	return c.pageNumber.ReplaceAllString(text, "")
}

// Words splits cleaned text on whitespace and upper-cases each word.
func (c *Cleaner) Words(text string) []string {
	fields := strings.Fields(c.Clean(text))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}
