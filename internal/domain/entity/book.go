package entity

import (
	"math"
	"time"
)

// Book is a catalog entry owned by a single user.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	ISBN       string    `json:"isbn"`
	Synopsis   string    `json:"synopsis"`
	BookCover  string    `json:"book_cover,omitempty"`
	Archived   bool      `json:"archived"`
	Shareable  bool      `json:"shareable"`
	OwnerID    string    `json:"owner_id"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns the book.
func (b *Book) IsOwnedBy(userID string) bool {
	return b.OwnerID == userID
}

// IsLendable reports whether other users may borrow or review the book.
func (b *Book) IsLendable() bool {
	return b.Shareable && !b.Archived
}

// AverageRate returns the mean of notes rounded to one decimal, or 0 with no notes.
func AverageRate(notes ...float64) float64 {
	if len(notes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range notes {
		sum += n
	}
	return RateFromStats(sum, int64(len(notes)))
}

// RateFromStats computes the rate from a precomputed sum and count.
func RateFromStats(sum float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Round(sum/float64(count)*10) / 10
}
