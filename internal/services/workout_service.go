package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
)

type WorkoutService struct {
	db          *pgxpool.Pool
	workoutRepo *repository.WorkoutTemplateRepository
}

func NewWorkoutService(db *pgxpool.Pool, workoutRepo *repository.WorkoutTemplateRepository) *WorkoutService {
	return &WorkoutService{db: db, workoutRepo: workoutRepo}
}

type WorkoutTemplateInput struct {
	Title       *string
	Goal        *string
	Difficulty  *models.WorkoutDifficulty
	Equipment   *string
	DaysPerWeek *int
	UserID      *int64
	Description *string
	IsActive    *bool
	Exercises   *[]repository.WorkoutExerciseInput
}

func (s *WorkoutService) ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	return s.workoutRepo.List(ctx)
}

func (s *WorkoutService) GetTemplate(ctx context.Context, id int64) (*models.WorkoutTemplate, error) {
	return s.workoutRepo.GetByID(ctx, id)
}

func (s *WorkoutService) CreateTemplate(ctx context.Context, input WorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	if fields := validateWorkoutInput(input, true); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	daysPerWeek := 3
	if input.DaysPerWeek != nil {
		daysPerWeek = *input.DaysPerWeek
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewWorkoutTemplateRepository(tx)
	template, err := txRepo.Create(ctx, repository.CreateWorkoutTemplateInput{
		Title:       strings.TrimSpace(*input.Title),
		Goal:        strings.TrimSpace(*input.Goal),
		Difficulty:  *input.Difficulty,
		Equipment:   input.Equipment,
		DaysPerWeek: daysPerWeek,
		UserID:      input.UserID,
		Description: input.Description,
		IsActive:    isActive,
	})
	if err != nil {
		return nil, err
	}
	if input.Exercises != nil {
		if err := txRepo.ReplaceExercises(ctx, template.ID, *input.Exercises); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, template.ID)
}

func (s *WorkoutService) UpdateTemplate(ctx context.Context, id int64, input WorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	if fields := validateWorkoutInput(input, false); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewWorkoutTemplateRepository(tx)
	if _, err := txRepo.Update(ctx, id, repository.UpdateWorkoutTemplateInput{
		Title:       input.Title,
		Goal:        input.Goal,
		Difficulty:  input.Difficulty,
		Equipment:   input.Equipment,
		DaysPerWeek: input.DaysPerWeek,
		UserID:      input.UserID,
		Description: input.Description,
		IsActive:    input.IsActive,
	}); err != nil {
		return nil, err
	}
	if input.Exercises != nil {
		if err := txRepo.ReplaceExercises(ctx, id, *input.Exercises); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, id)
}

func (s *WorkoutService) DeleteTemplate(ctx context.Context, id int64) error {
	return s.workoutRepo.Delete(ctx, id)
}

// UpdateExerciseOrder renumbers the template's join rows to the given id
// sequence; ids must cover the template's current exercises.
func (s *WorkoutService) UpdateExerciseOrder(ctx context.Context, id int64, exerciseIDs []int64) (*models.WorkoutTemplate, error) {
	template, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current := map[int64]struct{}{}
	for _, we := range template.WorkoutExercises {
		current[we.ExerciseID] = struct{}{}
	}
	if len(exerciseIDs) != len(current) {
		return nil, ErrInvalidInput
	}
	for _, exerciseID := range exerciseIDs {
		if _, ok := current[exerciseID]; !ok {
			return nil, ErrInvalidInput
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := repository.NewWorkoutTemplateRepository(tx).UpdateExerciseOrder(ctx, id, exerciseIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, id)
}

func validateWorkoutInput(input WorkoutTemplateInput, creating bool) map[string]string {
	fields := map[string]string{}

	if creating {
		if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
			fields["title"] = "title is required"
		}
		if input.Goal == nil || strings.TrimSpace(*input.Goal) == "" {
			fields["goal"] = "goal is required"
		}
		if input.Difficulty == nil {
			fields["difficulty"] = "difficulty is required"
		}
	} else {
		if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
			fields["title"] = "title must not be empty"
		}
		if input.Goal != nil && strings.TrimSpace(*input.Goal) == "" {
			fields["goal"] = "goal must not be empty"
		}
	}
	if input.Difficulty != nil && !input.Difficulty.Valid() {
		fields["difficulty"] = "difficulty must be low, medium or high"
	}
	if input.DaysPerWeek != nil && (*input.DaysPerWeek < 1 || *input.DaysPerWeek > 7) {
		fields["days_per_week"] = "days_per_week must be between 1 and 7"
	}
	return fields
}
