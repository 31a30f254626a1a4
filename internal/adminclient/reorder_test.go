package adminclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

func reorderFixture() []models.Question {
	return []models.Question{
		{ID: 1, Key: "system:age", Order: 1, IsActive: true},
		{ID: 2, Key: "system:weight", Order: 2, IsActive: true},
		{ID: 3, Key: "goal", Order: 3, IsActive: true},
		{ID: 4, Key: "activity", Order: 4, IsActive: true},
		{ID: 5, Key: "diet", Order: 5, IsActive: true},
	}
}

func newReorderSetup(t *testing.T, questions []models.Question) (*fakeAdminServer, *QuestionListView, *ReorderController) {
	t.Helper()
	server := newFakeAdminServer(questions)
	t.Cleanup(server.Close)

	client, _ := newTestClient(server.server.URL, "secret", &stubNavigator{path: "/questions"})
	view := NewQuestionListView(client, NewCache())
	require.NoError(t, view.Load(context.Background()))
	view.SetReorderMode(true)

	return server, view, NewReorderController(view, client)
}

func TestDropSendsAnchorOrderAndRefetches(t *testing.T) {
	server, _, controller := newReorderSetup(t, reorderFixture())

	require.NoError(t, controller.Drop(context.Background(), 5, 3))

	require.Len(t, server.orderCalls, 1)
	assert.Equal(t, orderCall{id: 5, newOrder: 3}, server.orderCalls[0])
	assert.Equal(t, 2, server.listCalls)
}

func TestDropOntoSystemRowRetargetsForward(t *testing.T) {
	server, _, controller := newReorderSetup(t, reorderFixture())

	// Dropping onto a system row anchors at the next non-system one.
	require.NoError(t, controller.Drop(context.Background(), 5, 1))

	require.Len(t, server.orderCalls, 1)
	assert.Equal(t, orderCall{id: 5, newOrder: 3}, server.orderCalls[0])
}

func TestDropOntoSystemRowRetargetsBackward(t *testing.T) {
	questions := []models.Question{
		{ID: 3, Key: "goal", Order: 1, IsActive: true},
		{ID: 4, Key: "activity", Order: 2, IsActive: true},
		{ID: 1, Key: "system:age", Order: 3, IsActive: true},
		{ID: 2, Key: "system:weight", Order: 4, IsActive: true},
	}
	server, _, controller := newReorderSetup(t, questions)

	require.NoError(t, controller.Drop(context.Background(), 3, 2))

	require.Len(t, server.orderCalls, 1)
	assert.Equal(t, orderCall{id: 3, newOrder: 2}, server.orderCalls[0])
}

func TestDropSystemQuestionIsNoop(t *testing.T) {
	server, _, controller := newReorderSetup(t, reorderFixture())

	require.NoError(t, controller.Drop(context.Background(), 1, 4))

	assert.Empty(t, server.orderCalls)
	assert.Equal(t, 1, server.listCalls)
}

func TestDropOnItselfIsNoop(t *testing.T) {
	server, _, controller := newReorderSetup(t, reorderFixture())

	require.NoError(t, controller.Drop(context.Background(), 4, 4))

	assert.Empty(t, server.orderCalls)
}

func TestDropRequiresReorderMode(t *testing.T) {
	server, view, controller := newReorderSetup(t, reorderFixture())
	view.SetReorderMode(false)

	require.NoError(t, controller.Drop(context.Background(), 5, 3))

	assert.Empty(t, server.orderCalls)
}

func TestDropIsBlockedWhileFiltered(t *testing.T) {
	server, view, controller := newReorderSetup(t, reorderFixture())
	view.SetSearch("goal")
	view.SetReorderMode(true)

	require.NoError(t, controller.Drop(context.Background(), 5, 3))

	assert.Empty(t, server.orderCalls)
	assert.False(t, view.ReorderMode())
}

func TestDropKeepsOptimisticOrderOnFailure(t *testing.T) {
	server, view, controller := newReorderSetup(t, reorderFixture())
	server.failOrder = true

	err := controller.Drop(context.Background(), 5, 3)
	require.Error(t, err)

	// The optimistic move stays in place until something else refetches.
	rows := view.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, int64(5), rows[2].ID)
	assert.Equal(t, int64(3), rows[3].ID)
	assert.Equal(t, 1, server.listCalls)
}
