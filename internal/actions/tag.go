package actions

import (
	"errors"
	"fmt"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// TagTarget pairs a location with the content it had before a tag
// operation rewrote it.
type TagTarget struct {
	Location        domain.EntryLocation
	OriginalContent string
}

type tagOperation int

const (
	opRemoveLast tagOperation = iota
	opRemoveAll
	opAppend
)

// AppendTag appends a tag to one or more entries.
type AppendTag struct {
	Targets []TagTarget
	Tag     string
}

func (a *AppendTag) Apply(s *session.Session) (Action, error) {
	for _, target := range a.Targets {
		updated := domain.AppendTag(target.OriginalContent, a.Tag)
		if err := s.SetEntryContent(target.Location, updated); err != nil {
			return nil, err
		}
	}
	return &restoreContent{targets: a.Targets, op: opAppend, tag: a.Tag}, nil
}

func (a *AppendTag) Description() Description {
	if n := len(a.Targets); n > 1 {
		return DescribeAlways(
			fmt.Sprintf("Added #%s to %d entries", a.Tag, n),
			fmt.Sprintf("Removed #%s from %d entries", a.Tag, n),
		)
	}
	return DescribeAlways("Added #"+a.Tag, "Removed #"+a.Tag)
}

// RemoveLastTag removes the last trailing tag from one or more entries.
// Entries whose content is nothing but tags are left alone.
type RemoveLastTag struct {
	Targets []TagTarget
}

func (a *RemoveLastTag) Apply(s *session.Session) (Action, error) {
	changed := false
	for _, target := range a.Targets {
		updated, ok := domain.RemoveLastTrailingTag(target.OriginalContent)
		if !ok {
			continue
		}
		if err := s.SetEntryContent(target.Location, updated); err != nil {
			return nil, err
		}
		changed = true
	}
	if !changed {
		return nil, errors.New("no trailing tags to remove")
	}
	return &restoreContent{targets: a.Targets, op: opRemoveLast}, nil
}

func (a *RemoveLastTag) Description() Description {
	if n := len(a.Targets); n > 1 {
		return DescribeAlways(
			fmt.Sprintf("Removed tags from %d entries", n),
			fmt.Sprintf("Restored tags on %d entries", n),
		)
	}
	return DescribeAlways("Removed tag", "Restored tag")
}

// RemoveAllTags removes every trailing tag from one or more entries.
type RemoveAllTags struct {
	Targets []TagTarget
}

func (a *RemoveAllTags) Apply(s *session.Session) (Action, error) {
	changed := false
	for _, target := range a.Targets {
		updated, ok := domain.RemoveAllTrailingTags(target.OriginalContent)
		if !ok {
			continue
		}
		if err := s.SetEntryContent(target.Location, updated); err != nil {
			return nil, err
		}
		changed = true
	}
	if !changed {
		return nil, errors.New("no trailing tags to remove")
	}
	return &restoreContent{targets: a.Targets, op: opRemoveAll}, nil
}

func (a *RemoveAllTags) Description() Description {
	if n := len(a.Targets); n > 1 {
		return DescribeAlways(
			fmt.Sprintf("Removed all tags from %d entries", n),
			fmt.Sprintf("Restored tags on %d entries", n),
		)
	}
	return DescribeAlways("Removed all tags", "Restored tags")
}

// restoreContent puts the captured original content back. The content
// each entry holds now is re-captured first, so redo replays exactly
// the text the tag operation produced.
type restoreContent struct {
	targets []TagTarget
	op      tagOperation
	tag     string
}

func (a *restoreContent) Apply(s *session.Session) (Action, error) {
	captured := make([]TagTarget, 0, len(a.targets))
	for _, target := range a.targets {
		current, ok := s.EntryContentAt(target.Location)
		if !ok {
			current = target.OriginalContent
		}
		if err := s.SetEntryContent(target.Location, target.OriginalContent); err != nil {
			return nil, err
		}
		captured = append(captured, TagTarget{Location: target.Location, OriginalContent: current})
	}
	return &replayContent{targets: captured, undo: a}, nil
}

func (a *restoreContent) Description() Description {
	n := len(a.targets)
	switch a.op {
	case opAppend:
		if n > 1 {
			return DescribeAlways(
				fmt.Sprintf("Removed #%s from %d entries", a.tag, n),
				fmt.Sprintf("Added #%s to %d entries", a.tag, n),
			)
		}
		return DescribeAlways("Removed #"+a.tag, "Added #"+a.tag)
	case opRemoveAll:
		if n > 1 {
			return DescribeAlways(
				fmt.Sprintf("Restored tags on %d entries", n),
				fmt.Sprintf("Removed all tags from %d entries", n),
			)
		}
		return DescribeAlways("Restored tags", "Removed all tags")
	default:
		if n > 1 {
			return DescribeAlways(
				fmt.Sprintf("Restored tags on %d entries", n),
				fmt.Sprintf("Removed tags from %d entries", n),
			)
		}
		return DescribeAlways("Restored tag", "Removed tag")
	}
}

// replayContent puts the tagged content back after an undo.
type replayContent struct {
	targets []TagTarget
	undo    *restoreContent
}

func (a *replayContent) Apply(s *session.Session) (Action, error) {
	for _, target := range a.targets {
		if err := s.SetEntryContent(target.Location, target.OriginalContent); err != nil {
			return nil, err
		}
	}
	return a.undo, nil
}

func (a *replayContent) Description() Description {
	d := a.undo.Description()
	return DescribeAlways(d.PastReversed, d.Past)
}
