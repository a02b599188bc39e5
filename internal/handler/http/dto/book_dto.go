package dto

import usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"

// BookRequest creates a book, or updates it when ID is set.
type BookRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title" binding:"required,notblank"`
	AuthorName string `json:"authorName" binding:"required,notblank"`
	ISBN       string `json:"isbn" binding:"required,isbn"`
	Synopsis   string `json:"synopsis" binding:"required,notblank"`
	Shareable  bool   `json:"shareable"`
}

func (r BookRequest) ToInput() usecasecontract.BookInput {
	return usecasecontract.BookInput{
		ID:         r.ID,
		Title:      r.Title,
		AuthorName: r.AuthorName,
		ISBN:       r.ISBN,
		Synopsis:   r.Synopsis,
		Shareable:  r.Shareable,
	}
}

// BookResponse is a book as listed to readers. Cover is base64 encoded by encoding/json.
type BookResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	AuthorName string  `json:"authorName"`
	ISBN       string  `json:"isbn"`
	Synopsis   string  `json:"synopsis"`
	Owner      string  `json:"owner"`
	Cover      []byte  `json:"cover,omitempty"`
	Rate       float64 `json:"rate"`
	Archived   bool    `json:"archived"`
	Shareable  bool    `json:"shareable"`
}

func ToBookResponse(d usecasecontract.BookDetails) BookResponse {
	return BookResponse{
		ID:         d.Book.ID,
		Title:      d.Book.Title,
		AuthorName: d.Book.AuthorName,
		ISBN:       d.Book.ISBN,
		Synopsis:   d.Book.Synopsis,
		Owner:      d.OwnerName,
		Cover:      d.Cover,
		Rate:       d.Rate,
		Archived:   d.Book.Archived,
		Shareable:  d.Book.Shareable,
	}
}

// BorrowedBookResponse is one borrow transaction with the book it concerns.
type BorrowedBookResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	AuthorName     string  `json:"authorName"`
	ISBN           string  `json:"isbn"`
	Rate           float64 `json:"rate"`
	Returned       bool    `json:"returned"`
	ReturnApproved bool    `json:"returnApproved"`
}

func ToBorrowedBookResponse(b usecasecontract.BorrowedBook) BorrowedBookResponse {
	resp := BorrowedBookResponse{
		Rate:           b.Rate,
		Returned:       b.Transaction.Returned,
		ReturnApproved: b.Transaction.ReturnApproved,
	}
	if b.Book != nil {
		resp.ID = b.Book.ID
		resp.Title = b.Book.Title
		resp.AuthorName = b.Book.AuthorName
		resp.ISBN = b.Book.ISBN
	} else {
		resp.ID = b.Transaction.BookID
	}
	return resp
}
