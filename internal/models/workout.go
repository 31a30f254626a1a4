package models

import "time"

type WorkoutDifficulty string

const (
	WorkoutDifficultyLow    WorkoutDifficulty = "low"
	WorkoutDifficultyMedium WorkoutDifficulty = "medium"
	WorkoutDifficultyHigh   WorkoutDifficulty = "high"
)

func (d WorkoutDifficulty) Valid() bool {
	switch d {
	case WorkoutDifficultyLow, WorkoutDifficultyMedium, WorkoutDifficultyHigh:
		return true
	}
	return false
}

type WorkoutExercise struct {
	WorkoutID       int64     `json:"workout_id"`
	ExerciseID      int64     `json:"exercise_id"`
	SortOrder       int       `json:"sort_order"`
	Sets            *int      `json:"sets"`
	Reps            *int      `json:"reps"`
	DurationSeconds *int      `json:"duration_seconds"`
	RestSeconds     *int      `json:"rest_seconds"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Exercise        *Exercise `json:"exercise,omitempty"`
}

type WorkoutTemplate struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Goal             string            `json:"goal"`
	Difficulty       WorkoutDifficulty `json:"difficulty"`
	Equipment        *string           `json:"equipment"`
	DaysPerWeek      int               `json:"days_per_week"`
	UserID           *int64            `json:"user_id"`
	Description      *string           `json:"description"`
	IsActive         bool              `json:"is_active"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	WorkoutExercises []WorkoutExercise `json:"workout_exercises"`
}
