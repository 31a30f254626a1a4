package models

import (
	"strings"
	"time"
)

// AnswerType is the closed set of answer kinds a question can ask for.
type AnswerType string

const (
	AnswerText           AnswerType = "text"
	AnswerNumber         AnswerType = "number"
	AnswerSingleChoice   AnswerType = "single_choice"
	AnswerMultipleChoice AnswerType = "multiple_choice"
	AnswerBoolean        AnswerType = "boolean"
)

// AnswerTypes lists every valid answer type in display order.
var AnswerTypes = []AnswerType{
	AnswerText,
	AnswerNumber,
	AnswerSingleChoice,
	AnswerMultipleChoice,
	AnswerBoolean,
}

func (t AnswerType) Valid() bool {
	switch t {
	case AnswerText, AnswerNumber, AnswerSingleChoice, AnswerMultipleChoice, AnswerBoolean:
		return true
	}
	return false
}

func (t AnswerType) IsChoice() bool {
	return t == AnswerSingleChoice || t == AnswerMultipleChoice
}

// AnswerFieldSpec describes which of the type-specific question fields are
// meaningful for an answer type. Fields not listed must be sent as null.
type AnswerFieldSpec struct {
	VisibleFields  []string
	RequiredFields []string
}

// FieldSpec is the single dispatch point over AnswerType. Every consumer
// (form, validator, preview, payload normalization) derives field relevance
// from here; adding a new answer type means extending this switch.
func FieldSpec(t AnswerType) AnswerFieldSpec {
	switch t {
	case AnswerText:
		return AnswerFieldSpec{VisibleFields: []string{"pattern"}}
	case AnswerNumber:
		return AnswerFieldSpec{VisibleFields: []string{"min_value", "max_value"}}
	case AnswerSingleChoice, AnswerMultipleChoice:
		return AnswerFieldSpec{
			VisibleFields:  []string{"options"},
			RequiredFields: []string{"options"},
		}
	case AnswerBoolean:
		return AnswerFieldSpec{}
	}
	return AnswerFieldSpec{}
}

// SystemKeyPrefix marks questions owned by the bot itself. They are rendered
// read-only in the admin panel and always keep the lowest order values.
const SystemKeyPrefix = "system:"

func IsSystemKey(key string) bool {
	return strings.HasPrefix(key, SystemKeyPrefix)
}

type OptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID         int64        `json:"id"`
	Key        string       `json:"key"`
	Order      int          `json:"order"`
	Text       string       `json:"text"`
	AnswerType AnswerType   `json:"answer_type"`
	Options    []OptionItem `json:"options"`
	MinValue   *int         `json:"min_value"`
	MaxValue   *int         `json:"max_value"`
	Pattern    *string      `json:"pattern"`
	IsRequired bool         `json:"is_required"`
	IsActive   bool         `json:"is_active"`
	Category   *string      `json:"category"`
	Tags       []string     `json:"tags"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (q *Question) IsSystem() bool {
	return IsSystemKey(q.Key)
}

// ParseTags splits comma-separated tag text, trims each entry and drops
// empties. Order is preserved and duplicates are kept.
func ParseTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// MaxSystemOrder returns the highest order among system questions, 0 when
// there are none. Custom questions must be ordered strictly after it.
func MaxSystemOrder(questions []Question) int {
	max := 0
	for _, q := range questions {
		if q.IsSystem() && q.Order > max {
			max = q.Order
		}
	}
	return max
}
