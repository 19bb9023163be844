package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/errors"
	"perpustakaan/internal/model"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interface{}) error) error {
	m.Called(ctx, mock.Anything)
	return fn(ctx, nil)
}

func (m *MockBookRepository) FindByIDTx(ctx context.Context, tx interface{}, id uint) (*model.Book, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) DecrementStockTx(ctx context.Context, tx interface{}, id uint) (int64, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) IncrementStockTx(ctx context.Context, tx interface{}, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteTx(ctx context.Context, tx interface{}, id uint) (int64, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockBorrowingRepository is a mock implementation of BorrowingRepository.
type MockBorrowingRepository struct {
	mock.Mock
}

func (m *MockBorrowingRepository) ListWithBooks(ctx context.Context, userID *uint) ([]model.BorrowingWithBook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BorrowingWithBook), args.Error(1)
}

func (m *MockBorrowingRepository) CreateTx(ctx context.Context, tx interface{}, borrowing *model.Borrowing) error {
	args := m.Called(ctx, tx, borrowing)
	return args.Error(0)
}

func (m *MockBorrowingRepository) FindByIDForUpdateTx(ctx context.Context, tx interface{}, id uint) (*model.Borrowing, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Borrowing), args.Error(1)
}

func (m *MockBorrowingRepository) MarkReturnedTx(ctx context.Context, tx interface{}, id uint, returnDate string) (int64, error) {
	args := m.Called(ctx, tx, id, returnDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBorrowingRepository) CountOpenByBookTx(ctx context.Context, tx interface{}, bookID uint) (int64, error) {
	args := m.Called(ctx, tx, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func memberClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Role: model.RoleUser, Name: "Member"}
}

func adminClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Role: model.RoleAdmin, Name: "Admin"}
}

func TestLoanService_Borrow(t *testing.T) {
	tests := []struct {
		name          string
		bookID        uint
		setupMocks    func(books *MockBookRepository, borrowings *MockBorrowingRepository)
		expectedError error
	}{
		{
			name:   "successful borrow records the loan",
			bookID: 1,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				books.On("DecrementStockTx", mock.Anything, mock.Anything, uint(1)).Return(int64(1), nil)
				borrowings.On("CreateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(b *model.Borrowing) bool {
					return b.BookID == 1 && b.UserID == 42 &&
						b.BorrowerName == "Budi" && b.BorrowerPhone == "0812" &&
						b.BorrowDate != "" && b.ReturnDate == nil
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "out of stock leaves no loan row",
			bookID: 1,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				books.On("DecrementStockTx", mock.Anything, mock.Anything, uint(1)).Return(int64(0), nil)
				books.On("FindByIDTx", mock.Anything, mock.Anything, uint(1)).Return(&model.Book{ID: 1, Stock: 0}, nil)
			},
			expectedError: errors.ErrOutOfStock,
		},
		{
			name:   "unknown book",
			bookID: 99,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				books.On("DecrementStockTx", mock.Anything, mock.Anything, uint(99)).Return(int64(0), nil)
				books.On("FindByIDTx", mock.Anything, mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBookNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := new(MockBookRepository)
			borrowings := new(MockBorrowingRepository)
			tt.setupMocks(books, borrowings)

			svc := NewLoanService(books, borrowings, nil)
			err := svc.Borrow(context.Background(), memberClaims(42), tt.bookID, "Budi", "0812")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				borrowings.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			books.AssertExpectations(t)
			borrowings.AssertExpectations(t)
		})
	}
}

func TestLoanService_Return(t *testing.T) {
	openLoan := func() *model.Borrowing {
		return &model.Borrowing{ID: 5, BookID: 7, UserID: 42, BorrowDate: "2024-01-02 10:00:00"}
	}
	closedDate := "2024-01-03 09:30:00"

	tests := []struct {
		name          string
		borrowingID   uint
		setupMocks    func(books *MockBookRepository, borrowings *MockBorrowingRepository)
		expectedError error
	}{
		{
			name:        "successful return increments stock once",
			borrowingID: 5,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				borrowings.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(5)).Return(openLoan(), nil)
				borrowings.On("MarkReturnedTx", mock.Anything, mock.Anything, uint(5), mock.AnythingOfType("string")).Return(int64(1), nil)
				books.On("IncrementStockTx", mock.Anything, mock.Anything, uint(7)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "unknown borrowing",
			borrowingID: 99,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				borrowings.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBorrowingNotFound,
		},
		{
			name:        "second return is rejected without touching stock",
			borrowingID: 5,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				loan := openLoan()
				loan.ReturnDate = &closedDate
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				borrowings.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(5)).Return(loan, nil)
			},
			expectedError: errors.ErrAlreadyReturned,
		},
		{
			name:        "loan closed by a concurrent return",
			borrowingID: 5,
			setupMocks: func(books *MockBookRepository, borrowings *MockBorrowingRepository) {
				books.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				borrowings.On("FindByIDForUpdateTx", mock.Anything, mock.Anything, uint(5)).Return(openLoan(), nil)
				borrowings.On("MarkReturnedTx", mock.Anything, mock.Anything, uint(5), mock.AnythingOfType("string")).Return(int64(0), nil)
			},
			expectedError: errors.ErrAlreadyReturned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := new(MockBookRepository)
			borrowings := new(MockBorrowingRepository)
			tt.setupMocks(books, borrowings)

			svc := NewLoanService(books, borrowings, nil)
			err := svc.Return(context.Background(), memberClaims(42), tt.borrowingID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				books.AssertNotCalled(t, "IncrementStockTx", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				books.AssertNumberOfCalls(t, "IncrementStockTx", 1)
			}

			books.AssertExpectations(t)
			borrowings.AssertExpectations(t)
		})
	}
}

func TestLoanService_ListBorrowings(t *testing.T) {
	rows := []model.BorrowingWithBook{{ID: 3, BookID: 1, UserID: 42, Title: "Laskar Pelangi"}}

	t.Run("admin sees all rows", func(t *testing.T) {
		books := new(MockBookRepository)
		borrowings := new(MockBorrowingRepository)
		borrowings.On("ListWithBooks", mock.Anything, (*uint)(nil)).Return(rows, nil)

		svc := NewLoanService(books, borrowings, nil)
		got, err := svc.ListBorrowings(context.Background(), adminClaims(1))

		assert.NoError(t, err)
		assert.Equal(t, rows, got)
		borrowings.AssertExpectations(t)
	})

	t.Run("member is scoped to their own rows", func(t *testing.T) {
		books := new(MockBookRepository)
		borrowings := new(MockBorrowingRepository)
		borrowings.On("ListWithBooks", mock.Anything, mock.MatchedBy(func(userID *uint) bool {
			return userID != nil && *userID == 42
		})).Return(rows, nil)

		svc := NewLoanService(books, borrowings, nil)
		got, err := svc.ListBorrowings(context.Background(), memberClaims(42))

		assert.NoError(t, err)
		assert.Equal(t, rows, got)
		borrowings.AssertExpectations(t)
	})
}
