package domain

import "time"

// BookStatus represents where a reader is with a book.
type BookStatus string

const (
	BookPending BookStatus = "pending"
	BookActive  BookStatus = "active"
	BookDone    BookStatus = "done"
)

const (
	MinRating = 1
	MaxRating = 5
)

var bookStatuses = map[BookStatus]struct{}{
	BookPending: {},
	BookActive:  {},
	BookDone:    {},
}

// Valid reports whether s is a known reading status.
func (s BookStatus) Valid() bool {
	_, ok := bookStatuses[s]
	return ok
}

// Book is a single entry in a user's collection.
type Book struct {
	ID        string     `json:"id"`
	Owner     string     `json:"owner"`
	Name      string     `json:"name"`
	Author    string     `json:"author"`
	Year      *int       `json:"year"`
	Pages     int        `json:"pages"`
	Status    BookStatus `json:"status"`
	Resume    string     `json:"resume"`
	Rating    *int       `json:"rating"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
