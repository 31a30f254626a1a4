package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type WorkoutTemplateRepository struct {
	db DBTX
}

func NewWorkoutTemplateRepository(db DBTX) *WorkoutTemplateRepository {
	return &WorkoutTemplateRepository{db: db}
}

type CreateWorkoutTemplateInput struct {
	Title       string
	Goal        string
	Difficulty  models.WorkoutDifficulty
	Equipment   *string
	DaysPerWeek int
	UserID      *int64
	Description *string
	IsActive    bool
}

type UpdateWorkoutTemplateInput struct {
	Title       *string
	Goal        *string
	Difficulty  *models.WorkoutDifficulty
	Equipment   *string
	DaysPerWeek *int
	UserID      *int64
	Description *string
	IsActive    *bool
}

type WorkoutExerciseInput struct {
	ExerciseID      int64
	SortOrder       int
	Sets            *int
	Reps            *int
	DurationSeconds *int
	RestSeconds     *int
	Notes           *string
}

const workoutColumns = `id, title, goal, difficulty, equipment, days_per_week, user_id, description, is_active, created_at, updated_at`

func (r *WorkoutTemplateRepository) List(ctx context.Context) ([]models.WorkoutTemplate, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_templates ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.WorkoutTemplate{}
	for rows.Next() {
		t, err := scanWorkoutTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range templates {
		exercises, err := r.listExercises(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].WorkoutExercises = exercises
	}
	return templates, nil
}

func (r *WorkoutTemplateRepository) GetByID(ctx context.Context, id int64) (*models.WorkoutTemplate, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_templates WHERE id = $1`
	template, err := scanWorkoutTemplate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	exercises, err := r.listExercises(ctx, id)
	if err != nil {
		return nil, err
	}
	template.WorkoutExercises = exercises
	return template, nil
}

func (r *WorkoutTemplateRepository) Create(ctx context.Context, input CreateWorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	query := `
		INSERT INTO workout_templates (title, goal, difficulty, equipment, days_per_week, user_id, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + workoutColumns
	return scanWorkoutTemplate(r.db.QueryRow(ctx, query,
		input.Title,
		input.Goal,
		input.Difficulty,
		input.Equipment,
		input.DaysPerWeek,
		input.UserID,
		input.Description,
		input.IsActive,
	))
}

func (r *WorkoutTemplateRepository) Update(ctx context.Context, id int64, input UpdateWorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	query := `
		UPDATE workout_templates
		SET title = COALESCE($1, title),
			goal = COALESCE($2, goal),
			difficulty = COALESCE($3, difficulty),
			equipment = COALESCE($4, equipment),
			days_per_week = COALESCE($5, days_per_week),
			user_id = COALESCE($6, user_id),
			description = COALESCE($7, description),
			is_active = COALESCE($8, is_active),
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + workoutColumns
	return scanWorkoutTemplate(r.db.QueryRow(ctx, query,
		input.Title,
		input.Goal,
		input.Difficulty,
		input.Equipment,
		input.DaysPerWeek,
		input.UserID,
		input.Description,
		input.IsActive,
		id,
	))
}

func (r *WorkoutTemplateRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceExercises rewrites the full join-row list of a template.
func (r *WorkoutTemplateRepository) ReplaceExercises(ctx context.Context, workoutID int64, exercises []WorkoutExerciseInput) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM workout_exercises WHERE workout_id = $1`, workoutID); err != nil {
		return err
	}
	for _, e := range exercises {
		_, err := r.db.Exec(ctx, `
			INSERT INTO workout_exercises (workout_id, exercise_id, sort_order, sets, reps, duration_seconds, rest_seconds, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, workoutID, e.ExerciseID, e.SortOrder, e.Sets, e.Reps, e.DurationSeconds, e.RestSeconds, e.Notes)
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateExerciseOrder renumbers the join rows to match the given id sequence.
func (r *WorkoutTemplateRepository) UpdateExerciseOrder(ctx context.Context, workoutID int64, exerciseIDs []int64) error {
	for i, exerciseID := range exerciseIDs {
		_, err := r.db.Exec(ctx, `
			UPDATE workout_exercises SET sort_order = $1, updated_at = NOW()
			WHERE workout_id = $2 AND exercise_id = $3
		`, i, workoutID, exerciseID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *WorkoutTemplateRepository) listExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error) {
	query := `
		SELECT we.workout_id, we.exercise_id, we.sort_order, we.sets, we.reps,
			we.duration_seconds, we.rest_seconds, we.notes, we.created_at, we.updated_at,
			e.id, e.name, e.description, e.video_url, e.equipment, e.is_cardio, e.difficulty, e.created_at, e.updated_at
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = $1
		ORDER BY we.sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.WorkoutExercise{}
	for rows.Next() {
		var we models.WorkoutExercise
		var e models.Exercise
		if err := rows.Scan(
			&we.WorkoutID,
			&we.ExerciseID,
			&we.SortOrder,
			&we.Sets,
			&we.Reps,
			&we.DurationSeconds,
			&we.RestSeconds,
			&we.Notes,
			&we.CreatedAt,
			&we.UpdatedAt,
			&e.ID,
			&e.Name,
			&e.Description,
			&e.VideoURL,
			&e.Equipment,
			&e.IsCardio,
			&e.Difficulty,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		we.Exercise = &e
		exercises = append(exercises, we)
	}
	return exercises, rows.Err()
}

func scanWorkoutTemplate(row pgx.Row) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Goal,
		&t.Difficulty,
		&t.Equipment,
		&t.DaysPerWeek,
		&t.UserID,
		&t.Description,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
