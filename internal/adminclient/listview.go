package adminclient

import (
	"context"
	"sort"
	"strings"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type ActiveFilter int

const (
	FilterAll ActiveFilter = iota
	FilterActive
	FilterInactive
)

const (
	CategoryAll  = "all"
	CategoryNone = "__none__"
	TypeAll      = "all"
)

// QuestionListView is the view-state behind the question list screen: the
// fetched set, the derived rows, the selection and the reorder-mode toggle.
type QuestionListView struct {
	client *Client
	cache  *Cache

	questions      []models.Question
	search         string
	activeFilter   ActiveFilter
	categoryFilter string
	typeFilter     string
	reorderMode    bool
	selected       map[int64]struct{}
}

func NewQuestionListView(client *Client, cache *Cache) *QuestionListView {
	return &QuestionListView{
		client:         client,
		cache:          cache,
		categoryFilter: CategoryAll,
		typeFilter:     TypeAll,
		selected:       map[int64]struct{}{},
	}
}

// Load fills the view from the cache, fetching only on a miss.
func (v *QuestionListView) Load(ctx context.Context) error {
	if cached, ok := v.cache.Get(CollectionQuestions); ok {
		if questions, ok := cached.([]models.Question); ok {
			v.setQuestions(questions)
			return nil
		}
	}

	questions, err := v.client.ListQuestions(ctx)
	if err != nil {
		return err
	}
	v.cache.Set(CollectionQuestions, questions)
	v.setQuestions(questions)
	return nil
}

// Refetch invalidates the bucket and reloads from the server. Safe to call
// after any mutation, including ones that partially failed.
func (v *QuestionListView) Refetch(ctx context.Context) error {
	v.cache.Invalidate(CollectionQuestions)
	return v.Load(ctx)
}

func (v *QuestionListView) setQuestions(questions []models.Question) {
	sorted := make([]models.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	v.questions = sorted
	v.clearSelection()
}

func (v *QuestionListView) SetSearch(search string) {
	v.search = search
	v.onFilterChange()
}

func (v *QuestionListView) SetActiveFilter(filter ActiveFilter) {
	v.activeFilter = filter
	v.onFilterChange()
}

func (v *QuestionListView) SetCategoryFilter(category string) {
	v.categoryFilter = category
	v.onFilterChange()
}

func (v *QuestionListView) SetTypeFilter(answerType string) {
	v.typeFilter = answerType
	v.onFilterChange()
}

// Selection is defined over the current view; whenever any filter changes the
// selection is dropped so a bulk action can never hit rows the admin no
// longer sees. Reorder mode is exited for the same reason.
func (v *QuestionListView) onFilterChange() {
	v.clearSelection()
	v.reorderMode = false
}

// Rows returns the filtered projection sorted by order ascending.
func (v *QuestionListView) Rows() []models.Question {
	query := strings.ToLower(strings.TrimSpace(v.search))

	rows := []models.Question{}
	for _, q := range v.questions {
		if v.activeFilter == FilterActive && !q.IsActive {
			continue
		}
		if v.activeFilter == FilterInactive && q.IsActive {
			continue
		}
		if !v.matchesCategory(q) {
			continue
		}
		if v.typeFilter != TypeAll && string(q.AnswerType) != v.typeFilter {
			continue
		}
		if query != "" && !matchesSearch(q, query) {
			continue
		}
		rows = append(rows, q)
	}
	return rows
}

func (v *QuestionListView) matchesCategory(q models.Question) bool {
	switch v.categoryFilter {
	case CategoryAll:
		return true
	case CategoryNone:
		return q.Category == nil || *q.Category == ""
	default:
		return q.Category != nil && *q.Category == v.categoryFilter
	}
}

func matchesSearch(q models.Question, query string) bool {
	if strings.Contains(strings.ToLower(q.Text), query) ||
		strings.Contains(strings.ToLower(q.Key), query) {
		return true
	}
	if q.Category != nil && strings.Contains(strings.ToLower(*q.Category), query) {
		return true
	}
	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Categories lists the distinct categories present in the fetched set.
func (v *QuestionListView) Categories() []string {
	seen := map[string]struct{}{}
	categories := []string{}
	for _, q := range v.questions {
		if q.Category == nil || *q.Category == "" {
			continue
		}
		if _, ok := seen[*q.Category]; ok {
			continue
		}
		seen[*q.Category] = struct{}{}
		categories = append(categories, *q.Category)
	}
	sort.Strings(categories)
	return categories
}

// SelectableIDs are the non-system rows of the current view; system
// questions can never be part of a bulk action.
func (v *QuestionListView) SelectableIDs() []int64 {
	ids := []int64{}
	for _, q := range v.Rows() {
		if !q.IsSystem() {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

func (v *QuestionListView) ToggleSelect(id int64) {
	selectable := false
	for _, selectableID := range v.SelectableIDs() {
		if selectableID == id {
			selectable = true
			break
		}
	}
	if !selectable {
		return
	}
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
	} else {
		v.selected[id] = struct{}{}
	}
}

// ToggleSelectAll selects every selectable row in view, or clears the
// selection when everything is already selected.
func (v *QuestionListView) ToggleSelectAll() {
	selectable := v.SelectableIDs()
	if len(selectable) == 0 {
		v.clearSelection()
		return
	}
	allSelected := true
	for _, id := range selectable {
		if _, ok := v.selected[id]; !ok {
			allSelected = false
			break
		}
	}
	if allSelected {
		v.clearSelection()
		return
	}
	for _, id := range selectable {
		v.selected[id] = struct{}{}
	}
}

func (v *QuestionListView) SelectedIDs() []int64 {
	ids := []int64{}
	for _, id := range v.SelectableIDs() {
		if _, ok := v.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (v *QuestionListView) clearSelection() {
	v.selected = map[int64]struct{}{}
}

func (v *QuestionListView) ClearSelection() {
	v.clearSelection()
}

// moveQuestion applies a stable array-move on the fetched set: the dragged
// question is removed and reinserted at the target's position.
func (v *QuestionListView) moveQuestion(draggedID, targetID int64) {
	oldIndex := indexOf(v.questions, draggedID)
	newIndex := indexOf(v.questions, targetID)
	if oldIndex < 0 || newIndex < 0 {
		return
	}
	moved := v.questions[oldIndex]
	without := append(append([]models.Question{}, v.questions[:oldIndex]...), v.questions[oldIndex+1:]...)
	reordered := append(append(append([]models.Question{}, without[:newIndex]...), moved), without[newIndex:]...)
	v.questions = reordered
}

// CanReorder reports whether reordering is meaningful: it needs the complete,
// unfiltered ordering, so search must be empty and the active filter "all".
// Category and type filters do not gate it.
func (v *QuestionListView) CanReorder() bool {
	return strings.TrimSpace(v.search) == "" && v.activeFilter == FilterAll
}

func (v *QuestionListView) ReorderMode() bool {
	return v.reorderMode
}

func (v *QuestionListView) SetReorderMode(on bool) {
	if on && !v.CanReorder() {
		return
	}
	v.reorderMode = on
}
