package actions

import (
	"fmt"
	"time"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// PasteTarget records a block of entries pasted at consecutive lines.
type PasteTarget struct {
	Date           time.Time
	StartLineIndex int
	Entries        []domain.EntryData
}

// PasteEntries records a paste that already happened when the clipboard
// was committed; applying it only produces the inverse.
type PasteEntries struct {
	Target PasteTarget
}

func (a *PasteEntries) Apply(_ *session.Session) (Action, error) {
	return &unpasteEntries{target: a.Target}, nil
}

func (a *PasteEntries) Description() Description {
	return pasteDesc(len(a.Target.Entries))
}

type unpasteEntries struct {
	target PasteTarget
}

func (a *unpasteEntries) Apply(s *session.Session) (Action, error) {
	// Reverse order keeps the remaining pasted lines at stable indexes.
	for i := len(a.target.Entries) - 1; i >= 0; i-- {
		if err := s.Store.DeleteEntry(a.target.Date, a.target.StartLineIndex+i); err != nil {
			return nil, err
		}
	}

	if a.target.Date.Equal(s.CurrentDate) {
		if err := s.ReloadDay(); err != nil {
			return nil, err
		}
		s.ClampDailySelection()
	}
	if err := s.RefreshFilter(); err != nil {
		return nil, err
	}

	return &repasteEntries{target: a.target}, nil
}

func (a *unpasteEntries) Description() Description {
	n := len(a.target.Entries)
	return DescribeAlways(
		fmt.Sprintf("Removed %d pasted %s", n, pluralize(n)),
		fmt.Sprintf("Pasted %d %s", n, pluralize(n)),
	)
}

type repasteEntries struct {
	target PasteTarget
}

func (a *repasteEntries) Apply(s *session.Session) (Action, error) {
	lines, err := s.Store.LoadDayLines(a.target.Date)
	if err != nil {
		return nil, err
	}
	for i, data := range a.target.Entries {
		insertIdx := a.target.StartLineIndex + i
		if insertIdx > len(lines) {
			insertIdx = len(lines)
		}
		line := &domain.EntryLine{EntryData: data}
		lines = append(lines[:insertIdx], append([]domain.Line{line}, lines[insertIdx:]...)...)
	}
	if err := s.Store.SaveDayLines(a.target.Date, lines); err != nil {
		return nil, err
	}

	if a.target.Date.Equal(s.CurrentDate) {
		if err := s.ReloadDay(); err != nil {
			return nil, err
		}
	}
	if err := s.RefreshFilter(); err != nil {
		return nil, err
	}

	return &unpasteEntries{target: a.target}, nil
}

func (a *repasteEntries) Description() Description {
	return pasteDesc(len(a.target.Entries))
}

func pasteDesc(n int) Description {
	return DescribeAlways(
		fmt.Sprintf("Pasted %d %s", n, pluralize(n)),
		fmt.Sprintf("Removed %d pasted %s", n, pluralize(n)),
	)
}
