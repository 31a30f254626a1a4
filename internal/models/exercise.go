package models

import "time"

type Muscle struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type Contraindication struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type Exercise struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	// VideoURL stores the object-storage key of the uploaded video.
	// VideoStreamURL is derived on read and carries the access token.
	VideoURL          *string            `json:"video_url"`
	VideoStreamURL    *string            `json:"video_stream_url,omitempty"`
	Muscles           []Muscle           `json:"muscles"`
	Equipment         *string            `json:"equipment"`
	IsCardio          bool               `json:"is_cardio"`
	Difficulty        int                `json:"difficulty"`
	Contraindications []Contraindication `json:"contraindications"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
