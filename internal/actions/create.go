package actions

import (
	"time"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// CreateTarget records where an entry was created, so the step can be
// undone and redone.
type CreateTarget struct {
	Date      time.Time
	LineIndex int
	Entry     domain.EntryData
	// FilterQuickAdd marks an entry created from inside the filter view.
	FilterQuickAdd bool
}

// CreateEntry records a creation that already happened when the input
// prompt was committed; applying it only produces the inverse.
type CreateEntry struct {
	Target CreateTarget
}

func (a *CreateEntry) Apply(_ *session.Session) (Action, error) {
	return &uncreateEntry{target: a.Target}, nil
}

func (a *CreateEntry) Description() Description {
	return DescribeOnUndo("Created entry", "Removed entry")
}

type uncreateEntry struct {
	target CreateTarget
}

func (a *uncreateEntry) Apply(s *session.Session) (Action, error) {
	if err := s.Store.DeleteEntry(a.target.Date, a.target.LineIndex); err != nil {
		return nil, err
	}

	if a.target.Date.Equal(s.CurrentDate) {
		if err := s.ReloadDay(); err != nil {
			return nil, err
		}
		s.ClampDailySelection()
	}

	if a.target.FilterQuickAdd && s.Filter != nil {
		kept := s.Filter.Entries[:0]
		for _, fe := range s.Filter.Entries {
			if fe.SourceDate.Equal(a.target.Date) && fe.LineIndex == a.target.LineIndex {
				continue
			}
			if fe.SourceDate.Equal(a.target.Date) && fe.LineIndex > a.target.LineIndex {
				fe.LineIndex--
			}
			kept = append(kept, fe)
		}
		s.Filter.Entries = kept
		s.ClampFilterSelection()
	}

	return &recreateEntry{target: a.target}, nil
}

func (a *uncreateEntry) Description() Description {
	return DescribeOnUndo("Removed entry", "Created entry")
}

type recreateEntry struct {
	target CreateTarget
}

func (a *recreateEntry) Apply(s *session.Session) (Action, error) {
	line := &domain.EntryLine{EntryData: a.target.Entry}
	if err := s.Store.InsertLine(a.target.Date, a.target.LineIndex, line); err != nil {
		return nil, err
	}

	if a.target.Date.Equal(s.CurrentDate) {
		if err := s.ReloadDay(); err != nil {
			return nil, err
		}
	}
	if a.target.FilterQuickAdd {
		if err := s.RefreshFilter(); err != nil {
			return nil, err
		}
	}

	return &uncreateEntry{target: a.target}, nil
}

func (a *recreateEntry) Description() Description {
	return DescribeOnUndo("Created entry", "Removed entry")
}
