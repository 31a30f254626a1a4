package adminclient

import (
	"context"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

// ReorderController turns a finished drag gesture into one local move and one
// order-update call. The server owns renumbering; the local move is purely
// optimistic and reconciled by the refetch that follows a successful call.
type ReorderController struct {
	view   *QuestionListView
	client *Client
}

func NewReorderController(view *QuestionListView, client *Client) *ReorderController {
	return &ReorderController{view: view, client: client}
}

// Drop handles dropping the dragged question onto the target row. System
// questions cannot be dragged, and dropping onto a system row re-targets the
// anchor to the nearest non-system neighbor; when no such neighbor exists the
// whole move is a no-op and no request is issued.
func (r *ReorderController) Drop(ctx context.Context, draggedID, targetID int64) error {
	if !r.view.ReorderMode() || !r.view.CanReorder() {
		return nil
	}
	if draggedID == targetID {
		return nil
	}

	rows := r.view.Rows()
	oldIndex := indexOf(rows, draggedID)
	newIndex := indexOf(rows, targetID)
	if oldIndex < 0 || newIndex < 0 {
		return nil
	}

	dragged := rows[oldIndex]
	if dragged.IsSystem() {
		return nil
	}

	anchor, ok := resolveAnchor(rows, newIndex)
	if !ok {
		return nil
	}

	// Optimistic: the list reflects the new order before the server confirms.
	r.view.moveQuestion(draggedID, targetID)

	if err := r.client.UpdateQuestionOrder(ctx, dragged.ID, anchor.Order); err != nil {
		// No rollback here: the optimistic order stays until the next refetch.
		return err
	}
	return r.view.Refetch(ctx)
}

// resolveAnchor picks the row whose order the dragged question takes. A
// system row cannot anchor, so the scan walks forward for the next
// non-system row, then backward for the previous one.
func resolveAnchor(rows []models.Question, targetIndex int) (models.Question, bool) {
	anchor := rows[targetIndex]
	if !anchor.IsSystem() {
		return anchor, true
	}
	for i := targetIndex + 1; i < len(rows); i++ {
		if !rows[i].IsSystem() {
			return rows[i], true
		}
	}
	for i := targetIndex - 1; i >= 0; i-- {
		if !rows[i].IsSystem() {
			return rows[i], true
		}
	}
	return models.Question{}, false
}

func indexOf(rows []models.Question, id int64) int {
	for i, q := range rows {
		if q.ID == id {
			return i
		}
	}
	return -1
}
