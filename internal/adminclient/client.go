package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ReFOiL/fitboddy-admin/internal/middleware"
	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

const genericNetworkError = "Network error"

// APIError is a server-rejected request. Message is the best-effort text
// extracted from the response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL string, session *Session, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// QuestionPayload is the normalized create/update body for a question.
type QuestionPayload struct {
	Key        string              `json:"key"`
	Order      int                 `json:"order"`
	Text       string              `json:"text"`
	AnswerType models.AnswerType   `json:"answer_type"`
	Options    []models.OptionItem `json:"options"`
	MinValue   *int                `json:"min_value"`
	MaxValue   *int                `json:"max_value"`
	Pattern    *string             `json:"pattern"`
	IsRequired bool                `json:"is_required"`
	IsActive   bool                `json:"is_active"`
	Category   *string             `json:"category"`
	Tags       []string            `json:"tags"`
}

func (c *Client) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := c.do(ctx, http.MethodGet, "/admin/questions", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) CreateQuestion(ctx context.Context, payload QuestionPayload) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/questions", payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id int64, payload QuestionPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/questions/%d", id), payload, nil)
}

// SetQuestionActive sends an is_active-only body, the bulk action path.
func (c *Client) SetQuestionActive(ctx context.Context, id int64, isActive bool) error {
	body := map[string]bool{"is_active": isActive}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/questions/%d", id), body, nil)
}

// DeactivateQuestion is delete-shaped on the wire but only flips is_active.
func (c *Client) DeactivateQuestion(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/questions/%d", id), nil, nil)
}

func (c *Client) UpdateQuestionOrder(ctx context.Context, id int64, newOrder int) error {
	body := map[string]int{"new_order": newOrder}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/questions/%d/order", id), body, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.UserDetail, error) {
	var detail models.UserDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *Client) ListWorkoutTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	var templates []models.WorkoutTemplate
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/workout-templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// VideoURL appends the admin token as a query parameter. The browser's
// native media loader cannot set the token header, so stream URLs carry it
// inline. A URL that already has a token is returned untouched.
func (c *Client) VideoURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	token := c.session.Token()
	if token == "" || strings.Contains(rawURL, "token=") {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + "token=" + url.QueryEscape(token)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set(middleware.AdminTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: genericNetworkError}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		// Invalid or expired token: tear the session down globally.
		c.session.Teardown()
		return &APIError{Status: resp.StatusCode, Message: extractErrorMessage(resp.Body)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractErrorMessage(resp.Body)}
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
				"status": resp.StatusCode,
			}).Warn(apiErr.Message)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// extractErrorMessage pulls a human message out of the response body, trying
// the keys the various backends use, with a generic fallback.
func extractErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return genericNetworkError
	}
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return genericNetworkError
	}
	switch {
	case parsed.Detail != "":
		return parsed.Detail
	case parsed.Message != "":
		return parsed.Message
	case parsed.Error != "":
		return parsed.Error
	}
	return genericNetworkError
}
