package model

import "time"

// Book represents a catalog entry. Stock counts the copies currently on the
// shelf; it is mutated only by borrow/return transactions and admin edits,
// and never goes below zero.
type Book struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null;index"`
	Author    string    `json:"author" gorm:"size:255"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre" gorm:"size:100"`
	CoverURL  string    `json:"cover_url" gorm:"size:512"`
	Stock     int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
