package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"perpustakaan/internal/model"
)

// BorrowingRepository defines loan persistence operations.
type BorrowingRepository interface {
	ListWithBooks(ctx context.Context, userID *uint) ([]model.BorrowingWithBook, error)
	// Transaction methods
	CreateTx(ctx context.Context, tx interface{}, borrowing *model.Borrowing) error
	FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Borrowing, error)
	MarkReturnedTx(ctx context.Context, tx interface{}, id uint, returnDate string) (int64, error)
	CountOpenByBookTx(ctx context.Context, tx interface{}, bookID uint) (int64, error)
}

type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository.
func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{db: db}
}

// ListWithBooks returns loans joined with their book's display fields, most
// recent first. A non-nil userID restricts the listing to that user's rows.
func (r *borrowingRepository) ListWithBooks(ctx context.Context, userID *uint) ([]model.BorrowingWithBook, error) {
	q := r.db.WithContext(ctx).Table("borrowings").
		Select("borrowings.id, borrowings.book_id, borrowings.user_id, books.title, books.cover_url, " +
			"borrowings.borrower_name, borrowings.borrower_phone, borrowings.borrow_date, borrowings.return_date").
		Joins("JOIN books ON books.id = borrowings.book_id")
	if userID != nil {
		q = q.Where("borrowings.user_id = ?", *userID)
	}

	var rows []model.BorrowingWithBook
	if err := q.Order("borrowings.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateTx creates a borrowing within a transaction.
func (r *borrowingRepository) CreateTx(ctx context.Context, tx interface{}, borrowing *model.Borrowing) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Create(borrowing).Error
}

// FindByIDForUpdateTx finds a borrowing by ID with a row-level lock within a transaction.
func (r *borrowingRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Borrowing, error) {
	txDB := tx.(*gorm.DB)
	var borrowing model.Borrowing
	if err := txDB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&borrowing, id).Error; err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// MarkReturnedTx closes an open loan. The return_date IS NULL guard makes the
// close idempotent; a zero row count means the loan was already returned.
func (r *borrowingRepository) MarkReturnedTx(ctx context.Context, tx interface{}, id uint, returnDate string) (int64, error) {
	txDB := tx.(*gorm.DB)
	res := txDB.WithContext(ctx).Model(&model.Borrowing{}).
		Where("id = ? AND return_date IS NULL", id).
		UpdateColumn("return_date", returnDate)
	return res.RowsAffected, res.Error
}

// CountOpenByBookTx counts open loans for a book within a transaction.
func (r *borrowingRepository) CountOpenByBookTx(ctx context.Context, tx interface{}, bookID uint) (int64, error) {
	txDB := tx.(*gorm.DB)
	var count int64
	err := txDB.WithContext(ctx).Model(&model.Borrowing{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error
	return count, err
}
