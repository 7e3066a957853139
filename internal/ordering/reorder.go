package ordering

import (
	"errors"

	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// ReorderPolicy controls how a supplied id list is matched against the
// container's current children.
type ReorderPolicy int

const (
	// PolicyPartial places the supplied ids first, in the given order,
	// and appends any existing children not named in the list after
	// them, preserving their prior relative order. Drag-and-drop
	// clients only know the ids local to the column being dropped
	// into, so partial lists are the norm for issue reorders. A
	// supplied issue that currently lives in another column is
	// adopted into this one.
	PolicyPartial ReorderPolicy = iota

	// PolicyFull requires every existing child to appear in the
	// supplied list exactly once; anything else is an unknown member.
	// Column reorders within a board use this.
	PolicyFull
)

// ReorderWithin rewrites a container's child sequence according to the
// supplied ids and policy, then persists dense order values in one
// transaction. An empty id list is a no-op.
func (e *Engine) ReorderWithin(container Container, ids []string, policy ReorderPolicy) error {
	if len(ids) == 0 {
		return nil
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.containerExists(tx, container); err != nil {
			return err
		}

		existing, err := e.childIDs(tx, container)
		if err != nil {
			return err
		}

		final, err := e.resolveSequence(tx, container, existing, ids, policy)
		if err != nil {
			return err
		}

		return e.writeSequence(tx, container, final)
	})
}

func (e *Engine) resolveSequence(tx *gorm.DB, container Container, existing, supplied []string, policy ReorderPolicy) ([]string, error) {
	existingSet := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(supplied))
	for _, id := range supplied {
		if _, dup := seen[id]; dup {
			return nil, ErrUnknownMember
		}
		seen[id] = struct{}{}

		if _, ok := existingSet[id]; ok {
			continue
		}
		switch policy {
		case PolicyFull:
			return nil, ErrUnknownMember
		case PolicyPartial:
			// An id from outside the container is acceptable as long
			// as the child itself exists in the store; it gets
			// adopted on write-back.
			if err := e.childExists(tx, container, id); err != nil {
				return nil, err
			}
		}
	}

	if policy == PolicyFull {
		for _, id := range existing {
			if _, ok := seen[id]; !ok {
				return nil, ErrUnknownMember
			}
		}
		return supplied, nil
	}

	final := make([]string, 0, len(existing)+len(supplied))
	final = append(final, supplied...)
	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			final = append(final, id)
		}
	}
	return final, nil
}

func (e *Engine) childExists(tx *gorm.DB, container Container, id string) error {
	var err error
	switch container.Kind {
	case KindBoard:
		err = tx.Select("id").First(&models.BoardColumn{}, "id = ?", id).Error
	case KindColumn:
		err = tx.Select("id").First(&models.Issue{}, "id = ?", id).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnknownMember
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// MoveIssue removes the issue from its source column, inserts it into
// the destination column at destIndex (clamped to the destination
// length), and resequences both columns densely inside one
// transaction. Source == destination degenerates to an in-place
// reorder with splice semantics.
func (e *Engine) MoveIssue(issueID, fromColumnID, toColumnID string, destIndex int) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		from := ColumnContainer(fromColumnID)
		to := ColumnContainer(toColumnID)

		if err := e.containerExists(tx, from); err != nil {
			return err
		}
		if fromColumnID != toColumnID {
			if err := e.containerExists(tx, to); err != nil {
				return err
			}
		}

		source, err := e.childIDs(tx, from)
		if err != nil {
			return err
		}

		srcIdx := -1
		for i, id := range source {
			if id == issueID {
				srcIdx = i
				break
			}
		}
		if srcIdx < 0 {
			return ErrChildNotFound
		}

		if fromColumnID == toColumnID {
			seq := append(source[:srcIdx:srcIdx], source[srcIdx+1:]...)
			idx := clamp(destIndex, len(seq))
			// Splice semantics: removing the issue first shifts the
			// insertion point left when it lands after the original
			// position.
			if srcIdx < idx {
				idx--
			}
			seq = insertAt(seq, idx, issueID)
			return e.writeSequence(tx, to, seq)
		}

		dest, err := e.childIDs(tx, to)
		if err != nil {
			return err
		}

		remaining := append(source[:srcIdx:srcIdx], source[srcIdx+1:]...)
		idx := clamp(destIndex, len(dest))
		dest = insertAt(dest, idx, issueID)

		if err := e.writeSequence(tx, to, dest); err != nil {
			return err
		}
		return e.writeSequence(tx, from, remaining)
	})
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

func insertAt(ids []string, idx int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	out = append(out, ids[idx:]...)
	return out
}
