package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

type QuestionHandler struct {
	questionService questionServiceAPI
}

type questionServiceAPI interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
	CreateQuestion(ctx context.Context, input services.QuestionInput) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id int64, input services.QuestionInput) (*models.Question, error)
	SetActive(ctx context.Context, id int64, isActive bool) (*models.Question, error)
	DeactivateQuestion(ctx context.Context, id int64) error
	UpdateOrder(ctx context.Context, id int64, newOrder int) error
}

func NewQuestionHandler(questionService questionServiceAPI) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type questionRequest struct {
	Key        string              `json:"key"`
	Order      *int                `json:"order"`
	Text       string              `json:"text"`
	AnswerType models.AnswerType   `json:"answer_type"`
	Options    []models.OptionItem `json:"options"`
	MinValue   *int                `json:"min_value"`
	MaxValue   *int                `json:"max_value"`
	Pattern    *string             `json:"pattern"`
	IsRequired *bool               `json:"is_required"`
	IsActive   *bool               `json:"is_active"`
	Category   *string             `json:"category"`
	Tags       []string            `json:"tags"`
}

type updateOrderRequest struct {
	NewOrder int `json:"new_order"`
}

func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.questionService.ListQuestions(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}
	return c.JSON(questions)
}

func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	question, err := h.questionService.CreateQuestion(c.Context(), questionInputFromRequest(req))
	if err != nil {
		return questionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      question.ID,
		"message": "Question created",
	})
}

func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// An is_active-only body is the bulk activate/deactivate path and skips
	// full draft validation.
	if isActivationOnly(req) {
		if _, err := h.questionService.SetActive(c.Context(), int64(id), *req.IsActive); err != nil {
			return questionErrorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "Question updated"})
	}

	if _, err := h.questionService.UpdateQuestion(c.Context(), int64(id), questionInputFromRequest(req)); err != nil {
		return questionErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Question updated"})
}

func (h *QuestionHandler) DeactivateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	if err := h.questionService.DeactivateQuestion(c.Context(), int64(id)); err != nil {
		return questionErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Question deactivated"})
}

func (h *QuestionHandler) UpdateQuestionOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.questionService.UpdateOrder(c.Context(), int64(id), req.NewOrder); err != nil {
		return questionErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order updated"})
}

func questionInputFromRequest(req questionRequest) services.QuestionInput {
	isRequired := false
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return services.QuestionInput{
		Key:        req.Key,
		Order:      req.Order,
		Text:       req.Text,
		AnswerType: req.AnswerType,
		Options:    req.Options,
		MinValue:   req.MinValue,
		MaxValue:   req.MaxValue,
		Pattern:    req.Pattern,
		IsRequired: isRequired,
		IsActive:   isActive,
		Category:   req.Category,
		Tags:       tags,
	}
}

func isActivationOnly(req questionRequest) bool {
	return req.IsActive != nil &&
		req.Key == "" &&
		req.Text == "" &&
		req.AnswerType == "" &&
		req.Order == nil &&
		req.Options == nil &&
		req.MinValue == nil &&
		req.MaxValue == nil &&
		req.Pattern == nil &&
		req.IsRequired == nil &&
		req.Category == nil &&
		req.Tags == nil
}

func questionErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	// 403 is reserved for token failures; the client tears the session down
	// on any 403, so a domain rejection must not reuse it.
	case errors.Is(err, services.ErrSystemQuestion):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "System questions are read-only"})
	case errors.Is(err, services.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Question key already exists"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
