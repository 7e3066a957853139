package ordering

import (
	"errors"

	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// DeleteBoard removes a board. A board that still has columns is only
// deleted when allowCascade is set; the cascade removes the columns'
// issues, then the columns, then the board, in one transaction.
func (e *Engine) DeleteBoard(boardID string, allowCascade bool) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Board{}, "id = ?", boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContainerNotFound
			}
			return classify(err)
		}

		var columnIDs []string
		if err := tx.Model(&models.BoardColumn{}).
			Where("board_id = ?", boardID).
			Pluck("id", &columnIDs).Error; err != nil {
			return classify(err)
		}

		if len(columnIDs) > 0 {
			if !allowCascade {
				return ErrDeleteRestricted
			}
			if err := tx.Where("column_id IN ?", columnIDs).Delete(&models.Issue{}).Error; err != nil {
				return classify(err)
			}
			if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardColumn{}).Error; err != nil {
				return classify(err)
			}
		}

		if err := tx.Delete(&models.Board{}, "id = ?", boardID).Error; err != nil {
			return classify(err)
		}
		return nil
	})
}

// DeleteColumn removes a column and, when allowCascade is set, its
// issues. The board's surviving columns are resequenced so their
// order values stay dense.
func (e *Engine) DeleteColumn(columnID string, allowCascade bool) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var column models.BoardColumn
		if err := tx.Select("id", "board_id").First(&column, "id = ?", columnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContainerNotFound
			}
			return classify(err)
		}

		var issueCount int64
		if err := tx.Model(&models.Issue{}).
			Where("column_id = ?", columnID).
			Count(&issueCount).Error; err != nil {
			return classify(err)
		}

		if issueCount > 0 {
			if !allowCascade {
				return ErrDeleteRestricted
			}
			if err := tx.Where("column_id = ?", columnID).Delete(&models.Issue{}).Error; err != nil {
				return classify(err)
			}
		}

		if err := tx.Delete(&models.BoardColumn{}, "id = ?", columnID).Error; err != nil {
			return classify(err)
		}

		return e.resequence(tx, BoardContainer(column.BoardID))
	})
}

// DeleteIssue removes one issue and closes the gap it leaves in its
// column, if it was filed in one.
func (e *Engine) DeleteIssue(issueID string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var issue models.Issue
		if err := tx.Select("id", "column_id").First(&issue, "id = ?", issueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChildNotFound
			}
			return classify(err)
		}

		if err := tx.Delete(&models.Issue{}, "id = ?", issueID).Error; err != nil {
			return classify(err)
		}

		if issue.ColumnID != nil {
			return e.resequence(tx, ColumnContainer(*issue.ColumnID))
		}
		return nil
	})
}
