package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/cache"
	"perpustakaan/internal/errors"
	"perpustakaan/internal/model"
	"perpustakaan/internal/repository"
)

const (
	booksCacheKey = "books:list"
	booksCacheTTL = time.Minute
)

// UpsertBookInput carries the admin-editable fields of a book. A non-zero ID
// selects update mode; zero means insert.
type UpsertBookInput struct {
	ID       uint
	Title    string
	Author   string
	Year     int
	Genre    string
	CoverURL string
	Stock    int
}

// CatalogService handles admin-gated catalog mutation and the public listing.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpsertBook(ctx context.Context, caller *auth.Claims, input UpsertBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, caller *auth.Claims, bookID uint) error
}

type catalogService struct {
	bookRepo      repository.BookRepository
	borrowingRepo repository.BorrowingRepository
	cache         *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	bookRepo repository.BookRepository,
	borrowingRepo repository.BorrowingRepository,
	cache *cache.Client,
) CatalogService {
	return &catalogService{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		cache:         cache,
	}
}

// ListBooks returns the whole catalog, newest first, served from Redis when warm.
func (s *catalogService) ListBooks(ctx context.Context) ([]model.Book, error) {
	if data, _ := s.cache.Get(ctx, booksCacheKey); data != nil {
		var cached []model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(books); err == nil {
		_ = s.cache.Set(ctx, booksCacheKey, payload, booksCacheTTL)
	}
	return books, nil
}

// UpsertBook creates or updates a catalog entry. Admin only.
func (s *catalogService) UpsertBook(ctx context.Context, caller *auth.Claims, input UpsertBookInput) (*model.Book, error) {
	if !caller.IsAdmin() {
		return nil, errors.ErrForbidden
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	var book *model.Book
	if input.ID != 0 {
		existing, err := s.bookRepo.FindByID(ctx, input.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrBookNotFound
			}
			return nil, err
		}
		existing.Title = input.Title
		existing.Author = input.Author
		existing.Year = input.Year
		existing.Genre = input.Genre
		existing.CoverURL = input.CoverURL
		existing.Stock = input.Stock
		if err := s.bookRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update book: %w", err)
		}
		book = existing
	} else {
		book = &model.Book{
			Title:    input.Title,
			Author:   input.Author,
			Year:     input.Year,
			Genre:    input.Genre,
			CoverURL: input.CoverURL,
			Stock:    input.Stock,
		}
		if err := s.bookRepo.Create(ctx, book); err != nil {
			return nil, fmt.Errorf("create book: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, booksCacheKey)
	return book, nil
}

// DeleteBook removes a catalog entry. Admin only; a book with an open loan
// stays put.
func (s *catalogService) DeleteBook(ctx context.Context, caller *auth.Claims, bookID uint) error {
	if !caller.IsAdmin() {
		return errors.ErrForbidden
	}

	err := s.bookRepo.WithTransaction(ctx, func(ctx context.Context, tx interface{}) error {
		open, err := s.borrowingRepo.CountOpenByBookTx(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("count open borrowings: %w", err)
		}
		if open > 0 {
			return errors.ErrBookOnLoan
		}

		rows, err := s.bookRepo.DeleteTx(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		if rows == 0 {
			return errors.ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, booksCacheKey)
	return nil
}
