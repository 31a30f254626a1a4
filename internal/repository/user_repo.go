package repository

import (
	"context"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, telegram_id, username, created_at, has_completed_profile, profile_completed_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.TelegramID,
			&u.Username,
			&u.CreatedAt,
			&u.HasCompletedProfile,
			&u.ProfileCompletedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, telegram_id, username, created_at, has_completed_profile, profile_completed_at
		FROM users
		WHERE id = $1
	`
	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.TelegramID,
		&u.Username,
		&u.CreatedAt,
		&u.HasCompletedProfile,
		&u.ProfileCompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAnswers joins each stored answer with its question so the admin panel
// can render the question text and options next to the raw value.
func (r *UserRepository) ListAnswers(ctx context.Context, userID int64) ([]models.UserAnswerGroup, error) {
	query := `
		SELECT q.id, q.key, q.text, q.answer_type, q.options, a.value, a.answered_at, a.updated_at
		FROM user_answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.user_id = $1
		ORDER BY q."order" ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.UserAnswerGroup{}
	for rows.Next() {
		var g models.UserAnswerGroup
		var options []byte
		if err := rows.Scan(
			&g.QuestionID,
			&g.QuestionKey,
			&g.QuestionText,
			&g.AnswerType,
			&options,
			&g.Value,
			&g.AnsweredAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(options) > 0 {
			if err := unmarshalOptionItems(options, &g.Options); err != nil {
				return nil, err
			}
		}
		answers = append(answers, g)
	}
	return answers, rows.Err()
}
