package actions

import (
	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// EditTarget captures both sides of a content edit.
type EditTarget struct {
	Location        domain.EntryLocation
	OriginalContent string
	NewContent      string
}

// EditEntry records an edit that was already written when the prompt was
// committed; applying it only produces the inverse.
type EditEntry struct {
	Target EditTarget
}

func (a *EditEntry) Apply(_ *session.Session) (Action, error) {
	return &restoreEdit{target: a.Target}, nil
}

func (a *EditEntry) Description() Description {
	return DescribeOnUndo("Edited entry", "Reverted edit")
}

type restoreEdit struct {
	target EditTarget
}

func (a *restoreEdit) Apply(s *session.Session) (Action, error) {
	if err := s.SetEntryContent(a.target.Location, a.target.OriginalContent); err != nil {
		return nil, err
	}
	return &redoEdit{target: a.target}, nil
}

func (a *restoreEdit) Description() Description {
	return DescribeOnUndo("Reverted edit", "Edited entry")
}

type redoEdit struct {
	target EditTarget
}

func (a *redoEdit) Apply(s *session.Session) (Action, error) {
	if err := s.SetEntryContent(a.target.Location, a.target.NewContent); err != nil {
		return nil, err
	}
	return &restoreEdit{target: a.target}, nil
}

func (a *redoEdit) Description() Description {
	return DescribeOnUndo("Edited entry", "Reverted edit")
}
