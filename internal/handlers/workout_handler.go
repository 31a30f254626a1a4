package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

type WorkoutHandler struct {
	workoutService workoutServiceAPI
}

type workoutServiceAPI interface {
	ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*models.WorkoutTemplate, error)
	CreateTemplate(ctx context.Context, input services.WorkoutTemplateInput) (*models.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, id int64, input services.WorkoutTemplateInput) (*models.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
	UpdateExerciseOrder(ctx context.Context, id int64, exerciseIDs []int64) (*models.WorkoutTemplate, error)
}

func NewWorkoutHandler(workoutService workoutServiceAPI) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type workoutExerciseRequest struct {
	ExerciseID      int64   `json:"exercise_id"`
	SortOrder       int     `json:"sort_order"`
	Sets            *int    `json:"sets"`
	Reps            *int    `json:"reps"`
	DurationSeconds *int    `json:"duration_seconds"`
	RestSeconds     *int    `json:"rest_seconds"`
	Notes           *string `json:"notes"`
}

type workoutTemplateRequest struct {
	Title       *string                   `json:"title"`
	Goal        *string                   `json:"goal"`
	Difficulty  *models.WorkoutDifficulty `json:"difficulty"`
	Equipment   *string                   `json:"equipment"`
	DaysPerWeek *int                      `json:"days_per_week"`
	UserID      *int64                    `json:"user_id"`
	Description *string                   `json:"description"`
	IsActive    *bool                     `json:"is_active"`
	Exercises   *[]workoutExerciseRequest `json:"exercises"`
}

type exercisesOrderRequest struct {
	ExerciseIDs []int64 `json:"exercise_ids"`
}

func (h *WorkoutHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.workoutService.ListTemplates(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout templates"})
	}
	return c.JSON(templates)
}

func (h *WorkoutHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	template, err := h.workoutService.GetTemplate(c.Context(), int64(id))
	if err != nil {
		return workoutErrorResponse(c, err)
	}
	return c.JSON(template)
}

func (h *WorkoutHandler) CreateTemplate(c *fiber.Ctx) error {
	var req workoutTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	template, err := h.workoutService.CreateTemplate(c.Context(), workoutInputFromRequest(req))
	if err != nil {
		return workoutErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

func (h *WorkoutHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	var req workoutTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	template, err := h.workoutService.UpdateTemplate(c.Context(), int64(id), workoutInputFromRequest(req))
	if err != nil {
		return workoutErrorResponse(c, err)
	}
	return c.JSON(template)
}

func (h *WorkoutHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	if err := h.workoutService.DeleteTemplate(c.Context(), int64(id)); err != nil {
		return workoutErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout template deleted"})
}

func (h *WorkoutHandler) UpdateExercisesOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	var req exercisesOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	template, err := h.workoutService.UpdateExerciseOrder(c.Context(), int64(id), req.ExerciseIDs)
	if err != nil {
		return workoutErrorResponse(c, err)
	}
	return c.JSON(template)
}

func workoutInputFromRequest(req workoutTemplateRequest) services.WorkoutTemplateInput {
	input := services.WorkoutTemplateInput{
		Title:       req.Title,
		Goal:        req.Goal,
		Difficulty:  req.Difficulty,
		Equipment:   req.Equipment,
		DaysPerWeek: req.DaysPerWeek,
		UserID:      req.UserID,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Exercises != nil {
		exercises := make([]repository.WorkoutExerciseInput, 0, len(*req.Exercises))
		for i, e := range *req.Exercises {
			sortOrder := e.SortOrder
			if sortOrder == 0 {
				sortOrder = i
			}
			exercises = append(exercises, repository.WorkoutExerciseInput{
				ExerciseID:      e.ExerciseID,
				SortOrder:       sortOrder,
				Sets:            e.Sets,
				Reps:            e.Reps,
				DurationSeconds: e.DurationSeconds,
				RestSeconds:     e.RestSeconds,
				Notes:           e.Notes,
			})
		}
		input.Exercises = &exercises
	}
	return input
}

func workoutErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout template not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
