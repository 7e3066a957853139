package ordering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrContainerNotFound = errors.New("container not found")
	ErrChildNotFound     = errors.New("child not found in container")
	ErrUnknownMember     = errors.New("unknown member of container")
	ErrDeleteRestricted  = errors.New("delete restricted: container has children")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ContainerKind selects which parent/child relation an operation
// addresses: a board owning columns, or a column owning issues.
type ContainerKind string

const (
	KindBoard  ContainerKind = "board"
	KindColumn ContainerKind = "column"
)

// Container addresses one ordered parent.
type Container struct {
	Kind ContainerKind
	ID   string
}

func BoardContainer(id string) Container  { return Container{Kind: KindBoard, ID: id} }
func ColumnContainer(id string) Container { return Container{Kind: KindColumn, ID: id} }

// Engine owns the density invariant: after any mutation the children
// of an ordered container occupy order values 0..N-1 with no gaps.
// Every public operation runs as a single transaction.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// AppendPosition returns the order a freshly created child of the
// container should receive (append at end).
func (e *Engine) AppendPosition(container Container) (int, error) {
	if err := e.containerExists(e.db, container); err != nil {
		return 0, err
	}

	var count int64
	var err error
	switch container.Kind {
	case KindBoard:
		err = e.db.Model(&models.BoardColumn{}).Where("board_id = ?", container.ID).Count(&count).Error
	case KindColumn:
		err = e.db.Model(&models.Issue{}).Where("column_id = ?", container.ID).Count(&count).Error
	default:
		return 0, fmt.Errorf("unsupported container kind %q", container.Kind)
	}
	if err != nil {
		return 0, classify(err)
	}
	return int(count), nil
}

// BoardCreatePosition returns the order for a new board within a
// workspace. Boards are prepended (min-1) rather than appended; the
// drag-and-drop UI shows the newest board first and this matches it.
func (e *Engine) BoardCreatePosition(workspaceID string) (int, error) {
	if err := e.db.Select("id").First(&models.Workspace{}, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrContainerNotFound
		}
		return 0, classify(err)
	}

	var min sql.NullInt64
	err := e.db.Model(&models.Board{}).
		Where("workspace_id = ?", workspaceID).
		Select(`MIN("order")`).
		Scan(&min).Error
	if err != nil {
		return 0, classify(err)
	}
	if !min.Valid {
		return -1, nil
	}
	return int(min.Int64) - 1, nil
}

func (e *Engine) containerExists(tx *gorm.DB, container Container) error {
	var err error
	switch container.Kind {
	case KindBoard:
		err = tx.Select("id").First(&models.Board{}, "id = ?", container.ID).Error
	case KindColumn:
		err = tx.Select("id").First(&models.BoardColumn{}, "id = ?", container.ID).Error
	default:
		return fmt.Errorf("unsupported container kind %q", container.Kind)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContainerNotFound
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// childIDs returns the container's current children, order ascending.
func (e *Engine) childIDs(tx *gorm.DB, container Container) ([]string, error) {
	var ids []string
	var err error
	switch container.Kind {
	case KindBoard:
		err = tx.Model(&models.BoardColumn{}).
			Where("board_id = ?", container.ID).
			Order(`"order" asc`).
			Pluck("id", &ids).Error
	case KindColumn:
		err = tx.Model(&models.Issue{}).
			Where("column_id = ?", container.ID).
			Order(`"order" asc`).
			Pluck("id", &ids).Error
	default:
		return nil, fmt.Errorf("unsupported container kind %q", container.Kind)
	}
	if err != nil {
		return nil, classify(err)
	}
	return ids, nil
}

// writeSequence persists order = index for every member of the final
// sequence. For column containers it also adopts issues that arrived
// from another column by reassigning their column_id.
func (e *Engine) writeSequence(tx *gorm.DB, container Container, ids []string) error {
	for idx, id := range ids {
		var err error
		switch container.Kind {
		case KindBoard:
			err = tx.Model(&models.BoardColumn{}).
				Where("id = ?", id).
				Update("order", idx).Error
		case KindColumn:
			err = tx.Model(&models.Issue{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{"order": idx, "column_id": container.ID}).Error
		default:
			return fmt.Errorf("unsupported container kind %q", container.Kind)
		}
		if err != nil {
			return classify(err)
		}
	}
	return nil
}

// Resequence closes any gaps in a container's ordering without
// changing the children's relative order.
func (e *Engine) Resequence(container Container) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.containerExists(tx, container); err != nil {
			return err
		}
		return e.resequence(tx, container)
	})
}

// resequence rewrites a container's current children densely without
// changing their relative order.
func (e *Engine) resequence(tx *gorm.DB, container Container) error {
	ids, err := e.childIDs(tx, container)
	if err != nil {
		return err
	}
	return e.writeSequence(tx, container, ids)
}

// classify maps store-level failures onto the error taxonomy. A
// cancelled or timed-out transaction is retryable, not a rejection.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
