package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID                  int64      `json:"id"`
	TelegramID          int64      `json:"telegram_id"`
	Username            *string    `json:"username"`
	CreatedAt           time.Time  `json:"created_at"`
	HasCompletedProfile bool       `json:"has_completed_profile"`
	ProfileCompletedAt  *time.Time `json:"profile_completed_at"`
}

// UserAnswerGroup carries one answered question. Value is polymorphic over
// the question's answer type: string, number, bool, an options echo or a raw
// JSON blob when nothing more specific applies.
type UserAnswerGroup struct {
	QuestionID   int64           `json:"question_id"`
	QuestionKey  string          `json:"question_key"`
	QuestionText string          `json:"question_text"`
	AnswerType   AnswerType      `json:"answer_type"`
	Options      []OptionItem    `json:"options,omitempty"`
	Value        json.RawMessage `json:"value,omitempty"`
	AnsweredAt   *time.Time      `json:"answered_at"`
	UpdatedAt    *time.Time      `json:"updated_at"`
}

type UserDetail struct {
	User
	Answers []UserAnswerGroup `json:"answers"`
}
