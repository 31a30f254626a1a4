package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
)

type exerciseStore interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, input repository.CreateExerciseInput) (*models.Exercise, error)
	Update(ctx context.Context, id int64, input repository.UpdateExerciseInput) (*models.Exercise, error)
	Delete(ctx context.Context, id int64) error
}

type ExerciseService struct {
	exerciseRepo   exerciseStore
	storageService StorageService
	// adminToken is appended to stream URLs because the browser's media
	// loading path cannot send custom headers.
	adminToken string
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, storageService StorageService, adminToken string) *ExerciseService {
	return &ExerciseService{
		exerciseRepo:   exerciseRepo,
		storageService: storageService,
		adminToken:     adminToken,
	}
}

type ExerciseInput struct {
	Name                *string
	Description         *string
	VideoURL            *string
	Equipment           *string
	IsCardio            *bool
	Difficulty          *int
	MuscleIDs           *[]int64
	ContraindicationIDs *[]int64
}

func (s *ExerciseService) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		s.attachStreamURL(ctx, &exercises[i])
	}
	return exercises, nil
}

func (s *ExerciseService) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachStreamURL(ctx, exercise)
	return exercise, nil
}

func (s *ExerciseService) CreateExercise(ctx context.Context, input ExerciseInput) (*models.Exercise, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "name is required"}}
	}
	difficulty := 1
	if input.Difficulty != nil {
		difficulty = *input.Difficulty
	}
	if difficulty < 1 || difficulty > 5 {
		return nil, &ValidationError{Fields: map[string]string{"difficulty": "difficulty must be between 1 and 5"}}
	}

	isCardio := false
	if input.IsCardio != nil {
		isCardio = *input.IsCardio
	}

	create := repository.CreateExerciseInput{
		Name:        strings.TrimSpace(*input.Name),
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Equipment:   input.Equipment,
		IsCardio:    isCardio,
		Difficulty:  difficulty,
	}
	if input.MuscleIDs != nil {
		create.MuscleIDs = *input.MuscleIDs
	}
	if input.ContraindicationIDs != nil {
		create.ContraindicationIDs = *input.ContraindicationIDs
	}

	exercise, err := s.exerciseRepo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	s.attachStreamURL(ctx, exercise)
	return exercise, nil
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, id int64, input ExerciseInput) (*models.Exercise, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "name must not be empty"}}
	}
	if input.Difficulty != nil && (*input.Difficulty < 1 || *input.Difficulty > 5) {
		return nil, &ValidationError{Fields: map[string]string{"difficulty": "difficulty must be between 1 and 5"}}
	}

	exercise, err := s.exerciseRepo.Update(ctx, id, repository.UpdateExerciseInput{
		Name:                input.Name,
		Description:         input.Description,
		VideoURL:            input.VideoURL,
		Equipment:           input.Equipment,
		IsCardio:            input.IsCardio,
		Difficulty:          input.Difficulty,
		MuscleIDs:           input.MuscleIDs,
		ContraindicationIDs: input.ContraindicationIDs,
	})
	if err != nil {
		return nil, err
	}
	s.attachStreamURL(ctx, exercise)
	return exercise, nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id int64) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.storageService != nil && exercise.VideoURL != nil && *exercise.VideoURL != "" {
		// Best effort: a leaked video object is recoverable, a failed delete
		// response is not worth surfacing to the admin.
		_ = s.storageService.DeleteObject(ctx, *exercise.VideoURL)
	}
	return nil
}

func (s *ExerciseService) attachStreamURL(ctx context.Context, exercise *models.Exercise) {
	if s.storageService == nil || exercise.VideoURL == nil || *exercise.VideoURL == "" {
		return
	}
	streamURL, err := s.storageService.StreamURL(ctx, *exercise.VideoURL)
	if err != nil {
		return
	}
	streamURL = appendToken(streamURL, s.adminToken)
	exercise.VideoStreamURL = &streamURL
}

func appendToken(rawURL, token string) string {
	if token == "" || strings.Contains(rawURL, "token=") {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + "token=" + url.QueryEscape(token)
}
