package actions

import (
	"fmt"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// CycleTarget pairs a location with the kind and completion state it had
// before cycling, so undo can put both back.
type CycleTarget struct {
	Location          domain.EntryLocation
	OriginalKind      domain.EntryKind
	OriginalCompleted bool
}

// CycleEntryType advances the type of one or more entries through
// task, note and event as a single undo step.
type CycleEntryType struct {
	Targets []CycleTarget
}

// NewCycle builds a batch cycle action.
func NewCycle(targets ...CycleTarget) *CycleEntryType {
	return &CycleEntryType{Targets: targets}
}

func (a *CycleEntryType) Apply(s *session.Session) (Action, error) {
	for _, target := range a.Targets {
		if err := s.CycleEntryKind(target.Location); err != nil {
			return nil, err
		}
	}
	return &restoreEntryType{targets: a.Targets}, nil
}

func (a *CycleEntryType) Description() Description {
	return cycleDesc(len(a.Targets), "Cycled", "Restored")
}

type restoreEntryType struct {
	targets []CycleTarget
}

func (a *restoreEntryType) Apply(s *session.Session) (Action, error) {
	for _, target := range a.targets {
		if err := s.SetEntryKind(target.Location, target.OriginalKind, target.OriginalCompleted); err != nil {
			return nil, err
		}
	}
	return &CycleEntryType{Targets: a.targets}, nil
}

func (a *restoreEntryType) Description() Description {
	return cycleDesc(len(a.targets), "Restored", "Cycled")
}

func cycleDesc(count int, did, undid string) Description {
	if count == 1 {
		return Description{
			Past:         did + " entry type",
			PastReversed: undid + " entry type",
			Visibility:   Silent,
		}
	}
	return Description{
		Past:         fmt.Sprintf("%s type on %d entries", did, count),
		PastReversed: fmt.Sprintf("%s type on %d entries", undid, count),
		Visibility:   Silent,
	}
}
