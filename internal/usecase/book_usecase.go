package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

type BookUsecase struct {
	bookRepo      contract.IBookRepository
	feedbackRepo  contract.IFeedbackRepository
	txRepo        contract.IBookTransactionRepository
	userRepo      contract.IUserRepository
	fileStorage   contract.IFileStorage
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	cache         contract.IBookCache
	now           func() time.Time
}

func NewBookUsecase(
	bookRepo contract.IBookRepository,
	feedbackRepo contract.IFeedbackRepository,
	txRepo contract.IBookTransactionRepository,
	userRepo contract.IUserRepository,
	fileStorage contract.IFileStorage,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *BookUsecase {
	return &BookUsecase{
		bookRepo:      bookRepo,
		feedbackRepo:  feedbackRepo,
		txRepo:        txRepo,
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

var _ usecasecontract.IBookUseCase = (*BookUsecase)(nil)

// SetBookCache enables the optional book detail cache.
func (uc *BookUsecase) SetBookCache(cache contract.IBookCache) {
	uc.cache = cache
}

func (uc *BookUsecase) SaveBook(ctx context.Context, user *entity.User, input usecasecontract.BookInput) (string, error) {
	now := uc.now().UTC()
	if input.ID == "" {
		book := &entity.Book{
			ID:         uc.uuidGenerator.NewUUID(),
			Title:      input.Title,
			AuthorName: input.AuthorName,
			ISBN:       input.ISBN,
			Synopsis:   input.Synopsis,
			Shareable:  input.Shareable,
			OwnerID:    user.ID,
			CreatedBy:  user.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.bookRepo.CreateBook(ctx, book); err != nil {
			uc.logger.Errorf("failed to create book: %v", err)
			return "", fmt.Errorf("failed to create book: %w", err)
		}
		return book.ID, nil
	}

	book, err := uc.ownedBook(ctx, user, input.ID)
	if err != nil {
		return "", err
	}
	book.Title = input.Title
	book.AuthorName = input.AuthorName
	book.ISBN = input.ISBN
	book.Synopsis = input.Synopsis
	book.Shareable = input.Shareable
	book.UpdatedAt = now
	if err := uc.bookRepo.UpdateBook(ctx, book); err != nil {
		return "", fmt.Errorf("failed to update book: %w", err)
	}
	uc.invalidate(ctx, book.ID)
	return book.ID, nil
}

// FindBookByID hides archived or non-shareable books from everyone except
// their owner and the user currently borrowing them.
func (uc *BookUsecase) FindBookByID(ctx context.Context, user *entity.User, bookID string) (*usecasecontract.BookDetails, error) {
	book, err := uc.cachedBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	visible, err := uc.canSee(ctx, user, book)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, entity.ErrBookNotFound
	}
	stats, err := uc.cachedRatingStats(ctx, bookID)
	if err != nil {
		return nil, err
	}
	owners, err := uc.userRepo.GetUsersByIDs(ctx, []string{book.OwnerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load book owner: %w", err)
	}
	details := uc.describe(ctx, book, stats, owners)
	return &details, nil
}

func (uc *BookUsecase) FindAllBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error) {
	req, err := newPageRequest(page, size)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, err
	}
	books, total, err := uc.bookRepo.FindDisplayableBooks(ctx, user.ID, req)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, fmt.Errorf("failed to list books: %w", err)
	}
	content, err := uc.describeAll(ctx, books)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, err
	}
	return entity.NewPage(content, page, size, total), nil
}

func (uc *BookUsecase) FindAllBooksByOwner(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BookDetails], error) {
	req, err := newPageRequest(page, size)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, err
	}
	books, total, err := uc.bookRepo.FindBooksByOwner(ctx, user.ID, req)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, fmt.Errorf("failed to list owner books: %w", err)
	}
	content, err := uc.describeAll(ctx, books)
	if err != nil {
		return entity.Page[usecasecontract.BookDetails]{}, err
	}
	return entity.NewPage(content, page, size, total), nil
}

func (uc *BookUsecase) FindAllBorrowedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error) {
	req, err := newPageRequest(page, size)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, err
	}
	txs, total, err := uc.txRepo.FindBorrowedByUser(ctx, user.ID, req)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, fmt.Errorf("failed to list borrowed books: %w", err)
	}
	content, err := uc.joinTransactions(ctx, txs)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, err
	}
	return entity.NewPage(content, page, size, total), nil
}

func (uc *BookUsecase) FindAllReturnedBooks(ctx context.Context, user *entity.User, page, size int) (entity.Page[usecasecontract.BorrowedBook], error) {
	req, err := newPageRequest(page, size)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, err
	}
	txs, total, err := uc.txRepo.FindReturnedToOwner(ctx, user.ID, req)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, fmt.Errorf("failed to list returned books: %w", err)
	}
	content, err := uc.joinTransactions(ctx, txs)
	if err != nil {
		return entity.Page[usecasecontract.BorrowedBook]{}, err
	}
	return entity.NewPage(content, page, size, total), nil
}

func (uc *BookUsecase) UpdateShareableStatus(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return uc.toggle(ctx, user, bookID, func(b *entity.Book) { b.Shareable = !b.Shareable })
}

func (uc *BookUsecase) UpdateArchivedStatus(ctx context.Context, user *entity.User, bookID string) (string, error) {
	return uc.toggle(ctx, user, bookID, func(b *entity.Book) { b.Archived = !b.Archived })
}

// UploadBookCover stores the file and points the book at it. A storage failure
// leaves the current cover untouched.
func (uc *BookUsecase) UploadBookCover(ctx context.Context, user *entity.User, bookID string, data []byte, filename string) error {
	if len(data) == 0 {
		return entity.ErrEmptyFile
	}
	book, err := uc.ownedBook(ctx, user, bookID)
	if err != nil {
		return err
	}
	location, err := uc.fileStorage.SaveFile(ctx, data, filename, user.ID)
	if err != nil {
		uc.logger.Warnf("cover for book %s was not saved: %v", bookID, err)
		return fmt.Errorf("failed to store cover: %w", err)
	}
	book.BookCover = location
	book.UpdatedAt = uc.now().UTC()
	if err := uc.bookRepo.UpdateBook(ctx, book); err != nil {
		return fmt.Errorf("failed to record cover: %w", err)
	}
	uc.invalidate(ctx, book.ID)
	return nil
}

func (uc *BookUsecase) toggle(ctx context.Context, user *entity.User, bookID string, flip func(*entity.Book)) (string, error) {
	book, err := uc.ownedBook(ctx, user, bookID)
	if err != nil {
		return "", err
	}
	flip(book)
	book.UpdatedAt = uc.now().UTC()
	if err := uc.bookRepo.UpdateBook(ctx, book); err != nil {
		return "", fmt.Errorf("failed to update book: %w", err)
	}
	uc.invalidate(ctx, book.ID)
	return book.ID, nil
}

func (uc *BookUsecase) canSee(ctx context.Context, user *entity.User, book *entity.Book) (bool, error) {
	if book.IsLendable() || book.IsOwnedBy(user.ID) {
		return true, nil
	}
	borrowing, err := uc.txRepo.HasOpenTransaction(ctx, book.ID, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check borrow status: %w", err)
	}
	return borrowing, nil
}

func (uc *BookUsecase) ownedBook(ctx context.Context, user *entity.User, bookID string) (*entity.Book, error) {
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsOwnedBy(user.ID) {
		return nil, entity.ErrNotBookOwner
	}
	return book, nil
}

func (uc *BookUsecase) describeAll(ctx context.Context, books []*entity.Book) ([]usecasecontract.BookDetails, error) {
	ids := make([]string, 0, len(books))
	ownerIDs := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
		ownerIDs = append(ownerIDs, b.OwnerID)
	}
	stats, err := uc.feedbackRepo.RatingStatsByBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ratings: %w", err)
	}
	owners, err := uc.userRepo.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load book owners: %w", err)
	}
	out := make([]usecasecontract.BookDetails, 0, len(books))
	for _, b := range books {
		out = append(out, uc.describe(ctx, b, stats[b.ID], owners))
	}
	return out, nil
}

func (uc *BookUsecase) describe(ctx context.Context, book *entity.Book, stats entity.RatingStats, owners map[string]*entity.User) usecasecontract.BookDetails {
	details := usecasecontract.BookDetails{Book: book, Rate: stats.Rate()}
	if owner, ok := owners[book.OwnerID]; ok {
		details.OwnerName = owner.FullName()
	}
	if book.BookCover != "" {
		cover, err := uc.fileStorage.ReadFile(ctx, book.BookCover)
		if err != nil {
			uc.logger.Warnf("cover %s of book %s is unreadable: %v", book.BookCover, book.ID, err)
		} else {
			details.Cover = cover
		}
	}
	return details
}

func (uc *BookUsecase) joinTransactions(ctx context.Context, txs []*entity.BookTransaction) ([]usecasecontract.BorrowedBook, error) {
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.BookID)
	}
	books, err := uc.bookRepo.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load borrowed books: %w", err)
	}
	stats, err := uc.feedbackRepo.RatingStatsByBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ratings: %w", err)
	}
	out := make([]usecasecontract.BorrowedBook, 0, len(txs))
	for _, tx := range txs {
		book, ok := books[tx.BookID]
		if !ok {
			uc.logger.Warnf("transaction %s references missing book %s", tx.ID, tx.BookID)
			continue
		}
		out = append(out, usecasecontract.BorrowedBook{
			Transaction: tx,
			Book:        book,
			Rate:        stats[tx.BookID].Rate(),
		})
	}
	return out, nil
}

func (uc *BookUsecase) cachedBook(ctx context.Context, bookID string) (*entity.Book, error) {
	if uc.cache != nil {
		if book, ok, err := uc.cache.GetBook(ctx, bookID); err == nil && ok {
			return book, nil
		} else if err != nil {
			uc.logger.Warnf("book cache read failed: %v", err)
		}
	}
	book, err := uc.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetBook(ctx, book); err != nil {
			uc.logger.Warnf("book cache write failed: %v", err)
		}
	}
	return book, nil
}

func (uc *BookUsecase) cachedRatingStats(ctx context.Context, bookID string) (entity.RatingStats, error) {
	if uc.cache != nil {
		if stats, ok, err := uc.cache.GetRatingStats(ctx, bookID); err == nil && ok {
			return stats, nil
		}
	}
	all, err := uc.feedbackRepo.RatingStatsByBooks(ctx, []string{bookID})
	if err != nil {
		return entity.RatingStats{}, fmt.Errorf("failed to compute rating: %w", err)
	}
	stats := all[bookID]
	if uc.cache != nil {
		if err := uc.cache.SetRatingStats(ctx, bookID, stats); err != nil {
			uc.logger.Warnf("rating cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (uc *BookUsecase) invalidate(ctx context.Context, bookID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateBook(ctx, bookID); err != nil {
		uc.logger.Warnf("failed to invalidate cached book %s: %v", bookID, err)
	}
}
