package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

type BookRepository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
	now   func() time.Time
}

var _ ports.BookRepository = (*BookRepository)(nil)

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]*domain.Book), now: time.Now}
}

func (r *BookRepository) Create(_ context.Context, b *domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyBook(b)
	stored.ID = uuid.NewString()
	r.books[stored.ID] = stored
	return copyBook(stored), nil
}

func (r *BookRepository) FindByID(_ context.Context, id, owner string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.owned(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return copyBook(b), nil
}

// List returns the owner's books, newest first.
func (r *BookRepository) List(_ context.Context, f ports.ListBooksFilter) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Book, 0)
	for _, b := range r.books {
		if b.Owner != f.Owner {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, copyBook(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookRepository) Update(_ context.Context, id, owner string, u ports.BookUpdate) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.owned(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.Resume != nil {
		b.Resume = *u.Resume
	}
	if u.Rating != nil {
		rating := *u.Rating
		b.Rating = &rating
	}
	b.UpdatedAt = r.now().UTC()
	return copyBook(b), nil
}

func (r *BookRepository) Delete(_ context.Context, id, owner string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.owned(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	delete(r.books, id)
	return b, nil
}

// owned must be called with r.mu held.
func (r *BookRepository) owned(id, owner string) (*domain.Book, bool) {
	b, ok := r.books[id]
	if !ok || b.Owner != owner {
		return nil, false
	}
	return b, true
}

func copyBook(b *domain.Book) *domain.Book {
	c := *b
	if b.Year != nil {
		y := *b.Year
		c.Year = &y
	}
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	return &c
}
