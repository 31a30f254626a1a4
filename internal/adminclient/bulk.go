package adminclient

import (
	"context"
	"sync"
)

// BulkActionController applies activate/deactivate to a selected subset.
// Each id gets its own request; the requests run concurrently and the action
// only reports success when every one of them succeeded.
type BulkActionController struct {
	view   *QuestionListView
	client *Client
}

func NewBulkActionController(view *QuestionListView, client *Client) *BulkActionController {
	return &BulkActionController{view: view, client: client}
}

// SetActive fires one update per id and waits for all of them to settle. The
// list is refetched regardless of the outcome, so after a partial failure the
// view still shows whatever state the server actually ended up in.
func (b *BulkActionController) SetActive(ctx context.Context, ids []int64, isActive bool) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := b.client.SetQuestionActive(ctx, id, isActive); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	refetchErr := b.view.Refetch(ctx)
	if firstErr != nil {
		return firstErr
	}
	if refetchErr != nil {
		return refetchErr
	}
	b.view.ClearSelection()
	return nil
}
