package repository

import (
	"context"

	"gorm.io/gorm"

	"perpustakaan/internal/model"
)

// BookRepository defines catalog persistence operations. The ...Tx variants
// run against a transaction handle obtained from WithTransaction, so stock
// mutations and their companion writes commit together.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error
	FindByIDTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error)
	DecrementStockTx(ctx context.Context, tx interface{}, id uint) (int64, error)
	IncrementStockTx(ctx context.Context, tx interface{}, id uint) error
	DeleteTx(ctx context.Context, tx interface{}, id uint) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns the whole catalog, most recently added first.
func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// WithTransaction executes a function within a database transaction.
func (r *bookRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, tx)
	})
}

// FindByIDTx finds a book by ID within a transaction.
func (r *bookRepository) FindByIDTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error) {
	txDB := tx.(*gorm.DB)
	var book model.Book
	if err := txDB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// DecrementStockTx conditionally takes one copy off the shelf. The WHERE
// clause keeps stock from ever going negative; the returned row count tells
// the caller whether a copy was actually taken.
func (r *bookRepository) DecrementStockTx(ctx context.Context, tx interface{}, id uint) (int64, error) {
	txDB := tx.(*gorm.DB)
	res := txDB.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND stock > 0", id).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	return res.RowsAffected, res.Error
}

// IncrementStockTx puts one copy back on the shelf.
func (r *bookRepository) IncrementStockTx(ctx context.Context, tx interface{}, id uint) error {
	txDB := tx.(*gorm.DB)
	return txDB.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + 1")).Error
}

// DeleteTx deletes a book within a transaction, returning the affected row count.
func (r *bookRepository) DeleteTx(ctx context.Context, tx interface{}, id uint) (int64, error) {
	txDB := tx.(*gorm.DB)
	res := txDB.WithContext(ctx).Delete(&model.Book{}, id)
	return res.RowsAffected, res.Error
}
