package wordrefs

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal issue found during extraction.
type WarningCode int

const (
	// WarnNoText marks a selected page without any text fragment.
	WarnNoText WarningCode = iota

	// WarnUnclassified marks a page with line starts outside every band.
	WarnUnclassified

	// WarnContent marks a page whose content stream was malformed but
	// still readable, such as an unbalanced graphics state.
	WarnContent
)

// String returns a string representation of the code
func (c WarningCode) String() string {
	switch c {
	case WarnNoText:
		return "no-text"
	case WarnUnclassified:
		return "unclassified"
	case WarnContent:
		return "content"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue. Extraction succeeded, but the results for
// the page may be incomplete.
type Warning struct {
	Page    int
	Code    WarningCode
	Message string
}

// String formats the warning with its page number
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into one line per warning
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
