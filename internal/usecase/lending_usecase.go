package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// LendingUsecase moves a (book, borrower) pair through borrowed, returned and approved.
type LendingUsecase struct {
	bookRepo      contract.IBookRepository
	txRepo        contract.IBookTransactionRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	now           func() time.Time
}

func NewLendingUsecase(
	bookRepo contract.IBookRepository,
	txRepo contract.IBookTransactionRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *LendingUsecase {
	return &LendingUsecase{
		bookRepo:      bookRepo,
		txRepo:        txRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

var _ usecasecontract.ILendingUseCase = (*LendingUsecase)(nil)

// BorrowBook opens a transaction. The store rejects a second open transaction
// for the same pair even when two requests pass the pre-check together.
func (uc *LendingUsecase) BorrowBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if !book.IsLendable() {
		return "", entity.ErrBookNotBorrowable
	}
	if book.IsOwnedBy(user.ID) {
		return "", entity.ErrSelfBorrow
	}
	open, err := uc.txRepo.HasOpenTransaction(ctx, book.ID, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check open transactions: %w", err)
	}
	if open {
		return "", entity.ErrBookAlreadyBorrowed
	}

	now := uc.now().UTC()
	tx := &entity.BookTransaction{
		ID:          uc.uuidGenerator.NewUUID(),
		BookID:      book.ID,
		BookOwnerID: book.OwnerID,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.txRepo.CreateTransaction(ctx, tx); err != nil {
		return "", err
	}
	return tx.ID, nil
}

func (uc *LendingUsecase) ReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if !book.IsLendable() {
		return "", entity.ErrBookNotBorrowable
	}
	if book.IsOwnedBy(user.ID) {
		return "", entity.ErrSelfReturn
	}
	tx, err := uc.txRepo.MarkReturned(ctx, book.ID, user.ID)
	if err != nil {
		return "", err
	}
	return tx.ID, nil
}

// ApproveReturnBorrowedBook lets the owner confirm a book came back.
func (uc *LendingUsecase) ApproveReturnBorrowedBook(ctx context.Context, user *entity.User, bookID string) (string, error) {
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if !book.IsLendable() {
		return "", entity.ErrBookNotBorrowable
	}
	if !book.IsOwnedBy(user.ID) {
		return "", entity.ErrNotBookOwner
	}
	tx, err := uc.txRepo.MarkReturnApproved(ctx, book.ID, user.ID)
	if err != nil {
		return "", err
	}
	uc.logger.Infof("return of book %s approved for transaction %s", book.ID, tx.ID)
	return tx.ID, nil
}
