package ports

import (
	"context"

	"github.com/readtrack/books-api/internal/core/domain"
)

// ListBooksFilter narrows a listing to one owner and, optionally, one status.
type ListBooksFilter struct {
	Owner  string
	Status domain.BookStatus // empty = any status
}

// BookUpdate carries the fields to change; nil fields are left untouched.
type BookUpdate struct {
	Status *domain.BookStatus
	Resume *string
	Rating *int
}

// BookRepository defines persistence operations for books. Every lookup is
// scoped by owner; a book owned by someone else is domain.ErrBookNotFound.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id, owner string) (*domain.Book, error)
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, error)
	Update(ctx context.Context, id, owner string, update BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id, owner string) (*domain.Book, error)
}
