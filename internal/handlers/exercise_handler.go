package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

type ExerciseHandler struct {
	exerciseService exerciseServiceAPI
}

type exerciseServiceAPI interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	CreateExercise(ctx context.Context, input services.ExerciseInput) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, id int64, input services.ExerciseInput) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
}

func NewExerciseHandler(exerciseService exerciseServiceAPI) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type exerciseRequest struct {
	Name                *string  `json:"name"`
	Description         *string  `json:"description"`
	VideoURL            *string  `json:"video_url"`
	Equipment           *string  `json:"equipment"`
	IsCardio            *bool    `json:"is_cardio"`
	Difficulty          *int     `json:"difficulty"`
	MuscleIDs           *[]int64 `json:"muscle_ids"`
	ContraindicationIDs *[]int64 `json:"contraindication_ids"`
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.exerciseService.ListExercises(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercises"})
	}
	return c.JSON(exercises)
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	exercise, err := h.exerciseService.GetExercise(c.Context(), int64(id))
	if err != nil {
		return exerciseErrorResponse(c, err)
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.exerciseService.CreateExercise(c.Context(), exerciseInputFromRequest(req))
	if err != nil {
		return exerciseErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Context(), int64(id), exerciseInputFromRequest(req))
	if err != nil {
		return exerciseErrorResponse(c, err)
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	if err := h.exerciseService.DeleteExercise(c.Context(), int64(id)); err != nil {
		return exerciseErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Exercise deleted"})
}

func exerciseInputFromRequest(req exerciseRequest) services.ExerciseInput {
	return services.ExerciseInput{
		Name:                req.Name,
		Description:         req.Description,
		VideoURL:            req.VideoURL,
		Equipment:           req.Equipment,
		IsCardio:            req.IsCardio,
		Difficulty:          req.Difficulty,
		MuscleIDs:           req.MuscleIDs,
		ContraindicationIDs: req.ContraindicationIDs,
	}
}

func exerciseErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
