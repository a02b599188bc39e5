package entity

import "time"

// Feedback is a rating and comment left by a user on someone else's book.
type Feedback struct {
	ID        string    `json:"id"`
	Note      float64   `json:"note"`
	Comment   string    `json:"comment"`
	BookID    string    `json:"book_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingStats aggregates the notes of a single book.
type RatingStats struct {
	Sum   float64
	Count int64
}

// Rate returns the rounded mean of the aggregated notes.
func (s RatingStats) Rate() float64 {
	return RateFromStats(s.Sum, s.Count)
}
