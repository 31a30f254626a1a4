package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/services"
)

type stubQuestionService struct {
	listResult      []models.Question
	listErr         error
	createResult    *models.Question
	createErr       error
	updateResult    *models.Question
	updateErr       error
	setActiveResult *models.Question
	setActiveErr    error
	deactivateErr   error
	orderErr        error

	lastCreateInput services.QuestionInput
	lastUpdateInput services.QuestionInput
	lastUpdateID    int64
	lastActiveID    int64
	lastActiveFlag  bool
	lastOrderID     int64
	lastNewOrder    int
	updateCalled    bool
	setActiveCalled bool
}

func (s *stubQuestionService) ListQuestions(_ context.Context) ([]models.Question, error) {
	return s.listResult, s.listErr
}

func (s *stubQuestionService) CreateQuestion(_ context.Context, input services.QuestionInput) (*models.Question, error) {
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubQuestionService) UpdateQuestion(_ context.Context, id int64, input services.QuestionInput) (*models.Question, error) {
	s.updateCalled = true
	s.lastUpdateID = id
	s.lastUpdateInput = input
	return s.updateResult, s.updateErr
}

func (s *stubQuestionService) SetActive(_ context.Context, id int64, isActive bool) (*models.Question, error) {
	s.setActiveCalled = true
	s.lastActiveID = id
	s.lastActiveFlag = isActive
	return s.setActiveResult, s.setActiveErr
}

func (s *stubQuestionService) DeactivateQuestion(_ context.Context, id int64) error {
	s.lastActiveID = id
	return s.deactivateErr
}

func (s *stubQuestionService) UpdateOrder(_ context.Context, id int64, newOrder int) error {
	s.lastOrderID = id
	s.lastNewOrder = newOrder
	return s.orderErr
}

func newQuestionApp(service *stubQuestionService) *fiber.App {
	handler := NewQuestionHandler(service)
	app := fiber.New()
	app.Get("/admin/questions", handler.ListQuestions)
	app.Post("/admin/questions", handler.CreateQuestion)
	app.Put("/admin/questions/:id", handler.UpdateQuestion)
	app.Delete("/admin/questions/:id", handler.DeactivateQuestion)
	app.Put("/admin/questions/:id/order", handler.UpdateQuestionOrder)
	return app
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateQuestionReturnsIDAndMessage(t *testing.T) {
	service := &stubQuestionService{
		createResult: &models.Question{ID: 12, Key: "goal"},
	}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPost, "/admin/questions", map[string]any{
		"key":         "goal",
		"text":        "What is your goal?",
		"answer_type": "text",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var payload struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.ID != 12 {
		t.Fatalf("expected id 12, got %d", payload.ID)
	}
	if service.lastCreateInput.Key != "goal" {
		t.Fatalf("expected key forwarded, got %q", service.lastCreateInput.Key)
	}
	if !service.lastCreateInput.IsActive {
		t.Fatalf("expected is_active to default to true")
	}
}

func TestCreateQuestionValidationErrorIncludesFields(t *testing.T) {
	service := &stubQuestionService{
		createErr: &services.ValidationError{Fields: map[string]string{"order": "order must be at least 4 (after system questions)"}},
	}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPost, "/admin/questions", map[string]any{
		"key":         "goal",
		"order":       2,
		"text":        "What is your goal?",
		"answer_type": "text",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var payload struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := payload.Fields["order"]; !ok {
		t.Fatalf("expected order field in response, got %v", payload.Fields)
	}
}

func TestUpdateQuestionActivationOnlyBodyUsesSetActive(t *testing.T) {
	service := &stubQuestionService{
		setActiveResult: &models.Question{ID: 4, Key: "goal", IsActive: false},
	}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPut, "/admin/questions/4", map[string]any{
		"is_active": false,
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !service.setActiveCalled {
		t.Fatalf("expected SetActive to be called")
	}
	if service.updateCalled {
		t.Fatalf("expected full update to be skipped")
	}
	if service.lastActiveID != 4 || service.lastActiveFlag {
		t.Fatalf("expected id 4 deactivated, got id=%d active=%t", service.lastActiveID, service.lastActiveFlag)
	}
}

func TestUpdateQuestionFullBodyUsesUpdate(t *testing.T) {
	service := &stubQuestionService{
		updateResult: &models.Question{ID: 4, Key: "goal"},
	}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPut, "/admin/questions/4", map[string]any{
		"key":         "goal",
		"text":        "What is your goal?",
		"answer_type": "text",
		"is_active":   false,
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.setActiveCalled {
		t.Fatalf("expected activation-only path to be skipped")
	}
	if !service.updateCalled || service.lastUpdateID != 4 {
		t.Fatalf("expected full update for id 4")
	}
	if service.lastUpdateInput.IsActive {
		t.Fatalf("expected is_active=false forwarded")
	}
}

// System-question rejections must not use 403: that status is reserved for
// token failures and logs the admin out client-side.
func TestUpdateQuestionSystemQuestionReturnsConflict(t *testing.T) {
	service := &stubQuestionService{updateErr: services.ErrSystemQuestion}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPut, "/admin/questions/1", map[string]any{
		"key":         "system:age",
		"text":        "How old are you?",
		"answer_type": "number",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestDeactivateSystemQuestionReturnsConflict(t *testing.T) {
	service := &stubQuestionService{deactivateErr: services.ErrSystemQuestion}
	app := newQuestionApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/admin/questions/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCreateQuestionDuplicateKeyReturnsConflict(t *testing.T) {
	service := &stubQuestionService{createErr: services.ErrDuplicateKey}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPost, "/admin/questions", map[string]any{
		"key":         "goal",
		"text":        "What is your goal?",
		"answer_type": "text",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestDeactivateQuestionNotFound(t *testing.T) {
	service := &stubQuestionService{deactivateErr: pgx.ErrNoRows}
	app := newQuestionApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/admin/questions/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateQuestionOrderForwardsNewOrder(t *testing.T) {
	service := &stubQuestionService{}
	app := newQuestionApp(service)

	req := jsonRequest(t, http.MethodPut, "/admin/questions/7/order", map[string]any{
		"new_order": 13,
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastOrderID != 7 || service.lastNewOrder != 13 {
		t.Fatalf("expected order update 7->13, got %d->%d", service.lastOrderID, service.lastNewOrder)
	}
}
