package ports

import (
	"context"

	"github.com/readtrack/books-api/internal/core/domain"
)

// CreateBookInput carries the data needed to add a book to a collection.
type CreateBookInput struct {
	Owner  string
	Name   string
	Author string
	Year   *int
	Pages  int
}

// UpdateResumeInput carries a reader's notes and rating for a book.
type UpdateResumeInput struct {
	Resume *string
	Rating *int
}

// BookService defines use-case operations for a user's books.
type BookService interface {
	ListBooks(ctx context.Context, owner string, status domain.BookStatus) ([]*domain.Book, error)
	GetBook(ctx context.Context, id, owner string) (*domain.Book, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id, owner string) (*domain.Book, error)
	UpdateStatus(ctx context.Context, id, owner string, status domain.BookStatus) (*domain.Book, error)
	UpdateResume(ctx context.Context, id, owner string, input UpdateResumeInput) (*domain.Book, error)
}
