package record

import (
	"strings"

	"github.com/tsawler/wordrefs/column"
)

// Merge joins cur and the trimmed next with a single space. Padding around
// next never reaches the result, and an empty next leaves cur unchanged.
func Merge(cur, next string) string {
	next = strings.TrimSpace(next)
	switch {
	case next == "":
		return cur
	case cur == "":
		return next
	}
	return cur + " " + next
}

// Action is what a line's leading fragment does to its field.
type Action int

const (
	// Drop discards the fragment text.
	Drop Action = iota

	// Append merges the fragment text into the field.
	Append

	// Overwrite replaces the field with the fragment text.
	Overwrite
)

// String returns a string representation of the action
func (a Action) String() string {
	switch a {
	case Drop:
		return "drop"
	case Append:
		return "append"
	case Overwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// Step is the outcome of one transition.
type Step struct {
	// Emit is set when the record in progress must be emitted and reset
	// before Action is applied.
	Emit bool

	// Action is applied to the field named by Next.
	Action Action

	// Next is the active field after the transition.
	Next column.Kind
}

// Transition computes the step for a line whose leading fragment classified
// as lead, given the active field and whether the record in progress already
// has a word.
func Transition(active, lead column.Kind, hasWord bool) Step {
	switch lead {
	case column.Word:
		return Step{Emit: hasWord && active != column.Word, Action: Append, Next: column.Word}
	case column.Lemma, column.Dictionary:
		return Step{Action: Append, Next: lead}
	case column.Comment:
		if active == column.Comment {
			return Step{Action: Append, Next: column.Comment}
		}
		return Step{Action: Overwrite, Next: column.Comment}
	default:
		return Step{Action: Drop, Next: active}
	}
}
