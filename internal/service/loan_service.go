package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/cache"
	"perpustakaan/internal/errors"
	"perpustakaan/internal/model"
	"perpustakaan/internal/repository"
	"perpustakaan/internal/timeutil"
)

// LoanService handles borrow and return state transitions. Both transitions
// run inside a single database transaction so the stock counter and the loan
// record can never drift apart.
type LoanService interface {
	Borrow(ctx context.Context, caller *auth.Claims, bookID uint, borrowerName, borrowerPhone string) error
	Return(ctx context.Context, caller *auth.Claims, borrowingID uint) error
	ListBorrowings(ctx context.Context, caller *auth.Claims) ([]model.BorrowingWithBook, error)
}

type loanService struct {
	bookRepo      repository.BookRepository
	borrowingRepo repository.BorrowingRepository
	cache         *cache.Client
}

// NewLoanService creates a new loan service.
func NewLoanService(
	bookRepo repository.BookRepository,
	borrowingRepo repository.BorrowingRepository,
	cache *cache.Client,
) LoanService {
	return &loanService{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		cache:         cache,
	}
}

// Borrow takes one copy of a book off the shelf and records the loan. The
// decrement is a conditional update (stock > 0) so concurrent borrows against
// the last copy serialize on the row: exactly one wins, the rest observe
// out-of-stock. The loan insert rides the same transaction.
func (s *loanService) Borrow(ctx context.Context, caller *auth.Claims, bookID uint, borrowerName, borrowerPhone string) error {
	err := s.bookRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		rows, err := s.bookRepo.DecrementStockTx(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if rows == 0 {
			// Nothing matched: either the book is gone or the shelf is empty.
			if _, err := s.bookRepo.FindByIDTx(ctx, tx, bookID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrBookNotFound
				}
				return err
			}
			return errors.ErrOutOfStock
		}

		borrowing := &model.Borrowing{
			BookID:        bookID,
			UserID:        caller.UserID,
			BorrowerName:  borrowerName,
			BorrowerPhone: borrowerPhone,
			BorrowDate:    timeutil.Now(),
		}
		if err := s.borrowingRepo.CreateTx(ctx, tx, borrowing); err != nil {
			return fmt.Errorf("create borrowing: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, booksCacheKey)
	return nil
}

// Return closes a loan: sets return_date once and puts the copy back on the
// shelf, both in one transaction. A second return of the same loan fails and
// leaves stock untouched.
func (s *loanService) Return(ctx context.Context, caller *auth.Claims, borrowingID uint) error {
	err := s.bookRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		borrowing, err := s.borrowingRepo.FindByIDForUpdateTx(ctx, tx, borrowingID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBorrowingNotFound
			}
			return err
		}
		if borrowing.ReturnDate != nil {
			return errors.ErrAlreadyReturned
		}

		rows, err := s.borrowingRepo.MarkReturnedTx(ctx, tx, borrowingID, timeutil.Now())
		if err != nil {
			return fmt.Errorf("mark returned: %w", err)
		}
		if rows == 0 {
			return errors.ErrAlreadyReturned
		}

		if err := s.bookRepo.IncrementStockTx(ctx, tx, borrowing.BookID); err != nil {
			return fmt.Errorf("increment stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, booksCacheKey)
	return nil
}

// ListBorrowings returns loan history joined with book display fields.
// Admins see every row; other callers only their own.
func (s *loanService) ListBorrowings(ctx context.Context, caller *auth.Claims) ([]model.BorrowingWithBook, error) {
	var userID *uint
	if !caller.IsAdmin() {
		userID = &caller.UserID
	}
	return s.borrowingRepo.ListWithBooks(ctx, userID)
}
