package entity

import "time"

// BookTransaction records one borrow of a book and its return lifecycle.
//
// A transaction is open while Returned is false. ReturnApproved can only be
// set after Returned.
type BookTransaction struct {
	ID             string    `json:"id"`
	BookID         string    `json:"book_id"`
	BookOwnerID    string    `json:"book_owner_id"`
	UserID         string    `json:"user_id"`
	Returned       bool      `json:"returned"`
	ReturnApproved bool      `json:"return_approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsOpen reports whether the book is still out with the borrower.
func (t *BookTransaction) IsOpen() bool {
	return !t.Returned && !t.ReturnApproved
}

// AwaitsApproval reports whether the borrower returned the book and the owner has not confirmed it.
func (t *BookTransaction) AwaitsApproval() bool {
	return t.Returned && !t.ReturnApproved
}
