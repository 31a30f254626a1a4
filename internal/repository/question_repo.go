package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

type CreateQuestionInput struct {
	Key        string
	Order      int
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

type UpdateQuestionInput struct {
	Order      *int
	Text       *string
	AnswerType *models.AnswerType
	Options    *[]models.OptionItem
	MinValue   *int
	MaxValue   *int
	Pattern    *string
	IsRequired *bool
	IsActive   *bool
	Category   *string
	Tags       *[]string
}

const questionColumns = `id, key, "order", text, answer_type, options, min_value, max_value,
	pattern, is_required, is_active, category, tags, created_at, updated_at`

func (r *QuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions ORDER BY "order" ASC, id ASC`, questionColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionColumns)
	return scanQuestion(r.db.QueryRow(ctx, query, id))
}

func (r *QuestionRepository) Create(ctx context.Context, input CreateQuestionInput) (*models.Question, error) {
	options, err := marshalOptions(input.Options)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO questions (key, "order", text, answer_type, options, min_value, max_value,
			pattern, is_required, is_active, category, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, questionColumns)
	return scanQuestion(r.db.QueryRow(ctx, query,
		input.Key,
		input.Order,
		input.Text,
		input.AnswerType,
		options,
		input.MinValue,
		input.MaxValue,
		input.Pattern,
		input.IsRequired,
		input.IsActive,
		input.Category,
		input.Tags,
	))
}

func (r *QuestionRepository) Update(ctx context.Context, id int64, input UpdateQuestionInput) (*models.Question, error) {
	var options any
	if input.Options != nil {
		marshaled, err := marshalOptions(*input.Options)
		if err != nil {
			return nil, err
		}
		options = marshaled
	}

	query := fmt.Sprintf(`
		UPDATE questions
		SET "order" = COALESCE($1, "order"),
			text = COALESCE($2, text),
			answer_type = COALESCE($3, answer_type),
			options = COALESCE($4, options),
			min_value = COALESCE($5, min_value),
			max_value = COALESCE($6, max_value),
			pattern = COALESCE($7, pattern),
			is_required = COALESCE($8, is_required),
			is_active = COALESCE($9, is_active),
			category = COALESCE($10, category),
			tags = COALESCE($11, tags),
			updated_at = NOW()
		WHERE id = $12
		RETURNING %s
	`, questionColumns)
	return scanQuestion(r.db.QueryRow(ctx, query,
		input.Order,
		input.Text,
		input.AnswerType,
		options,
		input.MinValue,
		input.MaxValue,
		input.Pattern,
		input.IsRequired,
		input.IsActive,
		input.Category,
		input.Tags,
		id,
	))
}

// ReplaceVariantFields overwrites the variant-specific columns without
// COALESCE so a changed answer type can null out stale values.
func (r *QuestionRepository) ReplaceVariantFields(
	ctx context.Context,
	id int64,
	options []models.OptionItem,
	minValue, maxValue *int,
	pattern *string,
) error {
	marshaled, err := marshalOptions(options)
	if err != nil {
		return err
	}
	query := `
		UPDATE questions
		SET options = $1, min_value = $2, max_value = $3, pattern = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err = r.db.Exec(ctx, query, marshaled, minValue, maxValue, pattern, id)
	return err
}

func (r *QuestionRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE questions SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ShiftOrders makes room at the requested position: every question at or
// above it (except the one being moved) is pushed one slot up.
func (r *QuestionRepository) ShiftOrders(ctx context.Context, fromOrder int, excludeID int64) error {
	query := `UPDATE questions SET "order" = "order" + 1, updated_at = NOW() WHERE "order" >= $1 AND id <> $2`
	_, err := r.db.Exec(ctx, query, fromOrder, excludeID)
	return err
}

func (r *QuestionRepository) SetOrder(ctx context.Context, id int64, order int) error {
	query := `UPDATE questions SET "order" = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, order, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *QuestionRepository) MaxSystemOrder(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX("order"), 0) FROM questions WHERE key LIKE 'system:%'`
	var max int
	if err := r.db.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func marshalOptions(options []models.OptionItem) ([]byte, error) {
	if options == nil {
		return nil, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return data, nil
}

func unmarshalOptionItems(data []byte, dst *[]models.OptionItem) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal options: %w", err)
	}
	return nil
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	var options []byte
	err := row.Scan(
		&q.ID,
		&q.Key,
		&q.Order,
		&q.Text,
		&q.AnswerType,
		&options,
		&q.MinValue,
		&q.MaxValue,
		&q.Pattern,
		&q.IsRequired,
		&q.IsActive,
		&q.Category,
		&q.Tags,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	return &q, nil
}
