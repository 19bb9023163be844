package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

// A relation field on Borrowing would make AutoMigrate emit a foreign key
// from borrowings.book_id to books.id, and a book whose loans are all closed
// could never be deleted.
func TestBorrowingCarriesNoForeignKey(t *testing.T) {
	s, err := schema.Parse(&Borrowing{}, &sync.Map{}, schema.NamingStrategy{})
	assert.NoError(t, err)
	assert.Empty(t, s.Relationships.Relations)

	bookID := s.LookUpField("book_id")
	assert.NotNil(t, bookID)
}
