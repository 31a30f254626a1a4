package adminclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

const (
	maxQuestionTextLen = 500
	maxCategoryLen     = 50
)

// QuestionDraft is raw form state: everything the admin typed, still as
// strings. Validate turns it into a normalized payload or field errors.
type QuestionDraft struct {
	Key        string
	Order      string
	Text       string
	AnswerType models.AnswerType
	Options    []models.OptionItem
	MinValue   string
	MaxValue   string
	Pattern    string
	IsRequired bool
	IsActive   bool
	Category   string
	TagsText   string
}

type FieldErrors map[string]string

// MinCustomOrder computes the lowest order a custom question may take:
// strictly after every system question.
func MinCustomOrder(questions []models.Question) int {
	return models.MaxSystemOrder(questions) + 1
}

// Validate checks the draft against its answer type's rules and the order
// ceiling. It returns either a payload ready for the API or field errors;
// submission must not happen while any error remains.
func (d QuestionDraft) Validate(minOrder int) (*QuestionPayload, FieldErrors) {
	errs := FieldErrors{}

	key := strings.TrimSpace(d.Key)
	if key == "" {
		errs["key"] = "key is required"
	}

	if strings.TrimSpace(d.Text) == "" {
		errs["text"] = "text is required"
	} else if len([]rune(d.Text)) > maxQuestionTextLen {
		errs["text"] = fmt.Sprintf("text must be at most %d characters", maxQuestionTextLen)
	}

	category := strings.TrimSpace(d.Category)
	if len([]rune(category)) > maxCategoryLen {
		errs["category"] = fmt.Sprintf("category must be at most %d characters", maxCategoryLen)
	}

	if !d.AnswerType.Valid() {
		errs["answer_type"] = "unknown answer type"
		return nil, errs
	}

	order := minOrder
	if strings.TrimSpace(d.Order) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(d.Order))
		if err != nil {
			errs["order"] = "order must be a number"
		} else {
			order = parsed
		}
	}
	if order < minOrder {
		errs["order"] = fmt.Sprintf("order must be at least %d (after system questions)", minOrder)
	}

	minValue, minErr := parseOptionalInt(d.MinValue)
	if minErr != nil {
		errs["min_value"] = "min_value must be a number"
	}
	maxValue, maxErr := parseOptionalInt(d.MaxValue)
	if maxErr != nil {
		errs["max_value"] = "max_value must be a number"
	}

	if d.AnswerType.IsChoice() {
		if len(d.Options) == 0 {
			errs["options"] = "at least one option is required"
		}
		for _, o := range d.Options {
			if strings.TrimSpace(o.Value) == "" || strings.TrimSpace(o.Label) == "" {
				errs["options"] = "every option needs a value and a label"
				break
			}
		}
	}
	if d.AnswerType == models.AnswerNumber && minValue != nil && maxValue != nil && *minValue > *maxValue {
		errs["min_value"] = "min_value must be <= max_value"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	payload := &QuestionPayload{
		Key:        key,
		Order:      order,
		Text:       d.Text,
		AnswerType: d.AnswerType,
		IsRequired: d.IsRequired,
		IsActive:   d.IsActive,
		Tags:       models.ParseTags(d.TagsText),
	}
	// Only the variant's own fields survive normalization; the rest stay null.
	if d.AnswerType.IsChoice() {
		payload.Options = d.Options
	}
	if d.AnswerType == models.AnswerNumber {
		payload.MinValue = minValue
		payload.MaxValue = maxValue
	}
	if d.AnswerType == models.AnswerText {
		if pattern := strings.TrimSpace(d.Pattern); pattern != "" {
			payload.Pattern = &pattern
		}
	}
	if category != "" {
		payload.Category = &category
	}
	return payload, nil
}

func parseOptionalInt(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
