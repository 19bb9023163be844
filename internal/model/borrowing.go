package model

// Borrowing represents one copy of a book being held by a user. The loan is
// open while ReturnDate is nil. Dates are WIB-formatted strings
// ("YYYY-MM-DD HH:MM:SS"), a display contract inherited from the business.
//
// BookID is a plain indexed column, not a database foreign key: closed loans
// stay as history after their book is deleted, and only open loans block a
// deletion (checked in the delete transaction).
type Borrowing struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	BookID        uint    `json:"book_id" gorm:"not null;index"`
	UserID        uint    `json:"user_id" gorm:"not null;index"`
	BorrowerName  string  `json:"borrower_name" gorm:"size:255"`
	BorrowerPhone string  `json:"borrower_phone" gorm:"size:50"`
	BorrowDate    string  `json:"borrow_date" gorm:"size:19;not null"`
	ReturnDate    *string `json:"return_date" gorm:"size:19"`
}

// BorrowingWithBook is the joined row returned by history listings: the loan
// plus the display fields of the referenced book.
type BorrowingWithBook struct {
	ID            uint    `json:"id"`
	BookID        uint    `json:"book_id"`
	UserID        uint    `json:"user_id"`
	Title         string  `json:"title"`
	CoverURL      string  `json:"cover_url"`
	BorrowerName  string  `json:"borrower_name"`
	BorrowerPhone string  `json:"borrower_phone"`
	BorrowDate    string  `json:"borrow_date"`
	ReturnDate    *string `json:"return_date"`
}
