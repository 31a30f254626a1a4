package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
)

const (
	maxQuestionTextLen = 500
	maxCategoryLen     = 50
)

type questionStore interface {
	List(ctx context.Context) ([]models.Question, error)
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	Create(ctx context.Context, input repository.CreateQuestionInput) (*models.Question, error)
	Update(ctx context.Context, id int64, input repository.UpdateQuestionInput) (*models.Question, error)
	ReplaceVariantFields(ctx context.Context, id int64, options []models.OptionItem, minValue, maxValue *int, pattern *string) error
	Deactivate(ctx context.Context, id int64) error
	MaxSystemOrder(ctx context.Context) (int, error)
}

type QuestionService struct {
	db           *pgxpool.Pool
	questionRepo questionStore
}

func NewQuestionService(db *pgxpool.Pool, questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{db: db, questionRepo: questionRepo}
}

type QuestionInput struct {
	Key        string
	Order      *int
	Text       string
	AnswerType models.AnswerType
	Options    []models.OptionItem
	MinValue   *int
	MaxValue   *int
	Pattern    *string
	IsRequired bool
	IsActive   bool
	Category   *string
	Tags       []string
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.questionRepo.List(ctx)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	minOrder, err := s.minCustomOrder(ctx)
	if err != nil {
		return nil, err
	}

	if fields := validateQuestionInput(input, minOrder); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if models.IsSystemKey(input.Key) {
		return nil, ErrSystemQuestion
	}

	order := minOrder
	if input.Order != nil {
		order = *input.Order
	}

	question, err := s.questionRepo.Create(ctx, repository.CreateQuestionInput{
		Key:        strings.TrimSpace(input.Key),
		Order:      order,
		Text:       input.Text,
		AnswerType: input.AnswerType,
		Options:    normalizeVariantOptions(input.AnswerType, input.Options),
		MinValue:   normalizeVariantMin(input.AnswerType, input.MinValue),
		MaxValue:   normalizeVariantMax(input.AnswerType, input.MaxValue),
		Pattern:    normalizeVariantPattern(input.AnswerType, input.Pattern),
		IsRequired: input.IsRequired,
		IsActive:   input.IsActive,
		Category:   normalizeCategory(input.Category),
		Tags:       input.Tags,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return question, nil
}

// UpdateQuestion applies a partial update. The variant-specific columns are
// rewritten wholesale so switching the answer type clears stale values.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id int64, input QuestionInput) (*models.Question, error) {
	current, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsSystem() {
		return nil, ErrSystemQuestion
	}

	minOrder, err := s.minCustomOrder(ctx)
	if err != nil {
		return nil, err
	}
	if fields := validateQuestionInput(input, minOrder); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	text := input.Text
	answerType := input.AnswerType
	isRequired := input.IsRequired
	isActive := input.IsActive
	tags := input.Tags
	_, err = s.questionRepo.Update(ctx, id, repository.UpdateQuestionInput{
		Order:      input.Order,
		Text:       &text,
		AnswerType: &answerType,
		IsRequired: &isRequired,
		IsActive:   &isActive,
		Category:   normalizeCategory(input.Category),
		Tags:       &tags,
	})
	if err != nil {
		return nil, err
	}

	err = s.questionRepo.ReplaceVariantFields(ctx, id,
		normalizeVariantOptions(input.AnswerType, input.Options),
		normalizeVariantMin(input.AnswerType, input.MinValue),
		normalizeVariantMax(input.AnswerType, input.MaxValue),
		normalizeVariantPattern(input.AnswerType, input.Pattern),
	)
	if err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(ctx, id)
}

// SetActive flips only the is_active flag; the bulk actions in the admin
// panel call this once per selected question.
func (s *QuestionService) SetActive(ctx context.Context, id int64, isActive bool) (*models.Question, error) {
	current, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsSystem() {
		return nil, ErrSystemQuestion
	}
	return s.questionRepo.Update(ctx, id, repository.UpdateQuestionInput{IsActive: &isActive})
}

// DeactivateQuestion is what DELETE maps to: questions are never hard-deleted.
func (s *QuestionService) DeactivateQuestion(ctx context.Context, id int64) error {
	current, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSystem() {
		return ErrSystemQuestion
	}
	return s.questionRepo.Deactivate(ctx, id)
}

// UpdateOrder moves a question to the requested order. The server owns
// renumbering: inside one transaction every question at or above the target
// order is shifted up, then the moved question takes the freed slot.
func (s *QuestionService) UpdateOrder(ctx context.Context, id int64, newOrder int) error {
	current, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSystem() {
		return ErrSystemQuestion
	}

	minOrder, err := s.minCustomOrder(ctx)
	if err != nil {
		return err
	}
	if newOrder < minOrder {
		return &ValidationError{Fields: map[string]string{
			"new_order": fmt.Sprintf("order must be at least %d (after system questions)", minOrder),
		}}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewQuestionRepository(tx)
	if err := txRepo.ShiftOrders(ctx, newOrder, id); err != nil {
		return err
	}
	if err := txRepo.SetOrder(ctx, id, newOrder); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *QuestionService) minCustomOrder(ctx context.Context) (int, error) {
	maxSystem, err := s.questionRepo.MaxSystemOrder(ctx)
	if err != nil {
		return 0, err
	}
	return maxSystem + 1, nil
}

func validateQuestionInput(input QuestionInput, minOrder int) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(input.Key) == "" {
		fields["key"] = "key is required"
	}
	if strings.TrimSpace(input.Text) == "" {
		fields["text"] = "text is required"
	} else if len([]rune(input.Text)) > maxQuestionTextLen {
		fields["text"] = fmt.Sprintf("text must be at most %d characters", maxQuestionTextLen)
	}
	if input.Category != nil && len([]rune(*input.Category)) > maxCategoryLen {
		fields["category"] = fmt.Sprintf("category must be at most %d characters", maxCategoryLen)
	}
	if !input.AnswerType.Valid() {
		fields["answer_type"] = "unknown answer type"
		return fields
	}
	if input.Order != nil && *input.Order < minOrder {
		fields["order"] = fmt.Sprintf("order must be at least %d (after system questions)", minOrder)
	}

	if input.AnswerType.IsChoice() {
		if len(input.Options) == 0 {
			fields["options"] = "at least one option is required"
		}
		for _, o := range input.Options {
			if strings.TrimSpace(o.Value) == "" || strings.TrimSpace(o.Label) == "" {
				fields["options"] = "every option needs a value and a label"
				break
			}
		}
	}
	if input.AnswerType == models.AnswerNumber {
		if input.MinValue != nil && input.MaxValue != nil && *input.MinValue > *input.MaxValue {
			fields["min_value"] = "min_value must be <= max_value"
		}
	}
	return fields
}

func normalizeVariantOptions(t models.AnswerType, options []models.OptionItem) []models.OptionItem {
	if !t.IsChoice() {
		return nil
	}
	return options
}

func normalizeVariantMin(t models.AnswerType, v *int) *int {
	if t != models.AnswerNumber {
		return nil
	}
	return v
}

func normalizeVariantMax(t models.AnswerType, v *int) *int {
	if t != models.AnswerNumber {
		return nil
	}
	return v
}

func normalizeVariantPattern(t models.AnswerType, pattern *string) *string {
	if t != models.AnswerText {
		return nil
	}
	if pattern != nil && strings.TrimSpace(*pattern) == "" {
		return nil
	}
	return pattern
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
