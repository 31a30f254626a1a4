package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

type CreateExerciseInput struct {
	Name                string
	Description         *string
	VideoURL            *string
	Equipment           *string
	IsCardio            bool
	Difficulty          int
	MuscleIDs           []int64
	ContraindicationIDs []int64
}

type UpdateExerciseInput struct {
	Name                *string
	Description         *string
	VideoURL            *string
	Equipment           *string
	IsCardio            *bool
	Difficulty          *int
	MuscleIDs           *[]int64
	ContraindicationIDs *[]int64
}

const exerciseColumns = `id, name, description, video_url, equipment, is_cardio, difficulty, created_at, updated_at`

func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exercises {
		if err := r.loadRelations(ctx, &exercises[i]); err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	exercise, err := scanExercise(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, input CreateExerciseInput) (*models.Exercise, error) {
	query := `
		INSERT INTO exercises (name, description, video_url, equipment, is_cardio, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + exerciseColumns
	exercise, err := scanExercise(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		input.VideoURL,
		input.Equipment,
		input.IsCardio,
		input.Difficulty,
	))
	if err != nil {
		return nil, err
	}
	if err := r.replaceMuscles(ctx, exercise.ID, input.MuscleIDs); err != nil {
		return nil, err
	}
	if err := r.replaceContraindications(ctx, exercise.ID, input.ContraindicationIDs); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, id int64, input UpdateExerciseInput) (*models.Exercise, error) {
	query := `
		UPDATE exercises
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			video_url = COALESCE($3, video_url),
			equipment = COALESCE($4, equipment),
			is_cardio = COALESCE($5, is_cardio),
			difficulty = COALESCE($6, difficulty),
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + exerciseColumns
	exercise, err := scanExercise(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		input.VideoURL,
		input.Equipment,
		input.IsCardio,
		input.Difficulty,
		id,
	))
	if err != nil {
		return nil, err
	}
	if input.MuscleIDs != nil {
		if err := r.replaceMuscles(ctx, id, *input.MuscleIDs); err != nil {
			return nil, err
		}
	}
	if input.ContraindicationIDs != nil {
		if err := r.replaceContraindications(ctx, id, *input.ContraindicationIDs); err != nil {
			return nil, err
		}
	}
	if err := r.loadRelations(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExerciseRepository) replaceMuscles(ctx context.Context, exerciseID int64, muscleIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM exercise_muscles WHERE exercise_id = $1`, exerciseID); err != nil {
		return err
	}
	for _, muscleID := range muscleIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO exercise_muscles (exercise_id, muscle_id) VALUES ($1, $2)`,
			exerciseID, muscleID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ExerciseRepository) replaceContraindications(ctx context.Context, exerciseID int64, ids []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM exercise_contraindications WHERE exercise_id = $1`, exerciseID); err != nil {
		return err
	}
	for _, contraindicationID := range ids {
		_, err := r.db.Exec(ctx,
			`INSERT INTO exercise_contraindications (exercise_id, contraindication_id) VALUES ($1, $2)`,
			exerciseID, contraindicationID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ExerciseRepository) loadRelations(ctx context.Context, exercise *models.Exercise) error {
	muscles, err := r.listMuscles(ctx, exercise.ID)
	if err != nil {
		return err
	}
	exercise.Muscles = muscles

	contraindications, err := r.listContraindications(ctx, exercise.ID)
	if err != nil {
		return err
	}
	exercise.Contraindications = contraindications
	return nil
}

func (r *ExerciseRepository) listMuscles(ctx context.Context, exerciseID int64) ([]models.Muscle, error) {
	query := `
		SELECT m.id, m.name, m.sort_order
		FROM muscles m
		JOIN exercise_muscles em ON em.muscle_id = m.id
		WHERE em.exercise_id = $1
		ORDER BY m.sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	muscles := []models.Muscle{}
	for rows.Next() {
		var m models.Muscle
		if err := rows.Scan(&m.ID, &m.Name, &m.SortOrder); err != nil {
			return nil, err
		}
		muscles = append(muscles, m)
	}
	return muscles, rows.Err()
}

func (r *ExerciseRepository) listContraindications(ctx context.Context, exerciseID int64) ([]models.Contraindication, error) {
	query := `
		SELECT c.id, c.name, c.sort_order
		FROM contraindications c
		JOIN exercise_contraindications ec ON ec.contraindication_id = c.id
		WHERE ec.exercise_id = $1
		ORDER BY c.sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contraindications := []models.Contraindication{}
	for rows.Next() {
		var c models.Contraindication
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		contraindications = append(contraindications, c)
	}
	return contraindications, rows.Err()
}

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var e models.Exercise
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.VideoURL,
		&e.Equipment,
		&e.IsCardio,
		&e.Difficulty,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
