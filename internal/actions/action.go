// Package actions implements the reversible mutation engine. Every
// mutation is an Action whose Apply performs the change and returns the
// inverse action; the Executor keeps the undo and redo stacks.
package actions

import (
	"fmt"

	"github.com/xvierd/daybook/internal/session"
)

// Visibility controls when an action's description reaches the status
// line.
type Visibility int

const (
	// Silent actions never announce themselves; the change is visible on
	// screen anyway.
	Silent Visibility = iota
	// OnUndo actions announce only when undone or redone.
	OnUndo
	// Always actions announce on execute, undo and redo.
	Always
)

// Description is the user-facing summary of an action, phrased in past
// tense for both directions.
type Description struct {
	Past         string
	PastReversed string
	Visibility   Visibility
}

// DescribeAlways builds an Always description.
func DescribeAlways(past, pastReversed string) Description {
	return Description{Past: past, PastReversed: pastReversed, Visibility: Always}
}

// DescribeOnUndo builds an OnUndo description.
func DescribeOnUndo(past, pastReversed string) Description {
	return Description{Past: past, PastReversed: pastReversed, Visibility: OnUndo}
}

// Action is a reversible mutation of the session and its journal.
type Action interface {
	// Apply performs the mutation and returns its inverse. Applying the
	// inverse must bring both the journal file and the session state
	// back, and itself return a redo action.
	Apply(s *session.Session) (Action, error)

	// Description summarizes the action for the status line.
	Description() Description
}

func pluralize(count int) string {
	if count == 1 {
		return "entry"
	}
	return "entries"
}

func countedDesc(count int, verb string) string {
	return fmt.Sprintf("%s %s", verb, pluralize(count))
}
