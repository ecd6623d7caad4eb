package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api/metrics"
	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger, now: time.Now}
}

// ListBooks returns the owner's books, optionally narrowed to one status.
func (s *BookService) ListBooks(ctx context.Context, owner string, status domain.BookStatus) ([]*domain.Book, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("list books: unknown status %q: %w", status, domain.ErrValidation)
	}
	books, err := s.repo.List(ctx, ports.ListBooksFilter{Owner: owner, Status: status})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id, owner string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id, owner)
}

// CreateBook adds a book in the pending state with no resume or rating.
func (s *BookService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	name := strings.TrimSpace(input.Name)
	author := strings.TrimSpace(input.Author)
	if name == "" || author == "" || input.Pages <= 0 {
		return nil, fmt.Errorf("create book: name, author and pages are required: %w", domain.ErrValidation)
	}

	now := s.now().UTC()
	book, err := s.repo.Create(ctx, &domain.Book{
		Owner:     input.Owner,
		Name:      name,
		Author:    author,
		Year:      input.Year,
		Pages:     input.Pages,
		Status:    domain.BookPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner", input.Owner).Msg("failed to create book")
		return nil, fmt.Errorf("create book: %w", err)
	}

	metrics.BooksCreatedTotal.Inc()
	s.logger.Info().Str("book_id", book.ID).Str("owner", input.Owner).Msg("book created")
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id, owner string) (*domain.Book, error) {
	book, err := s.repo.Delete(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("book_id", id).Str("owner", owner).Msg("book deleted")
	return book, nil
}

func (s *BookService) UpdateStatus(ctx context.Context, id, owner string, status domain.BookStatus) (*domain.Book, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("update status: unknown status %q: %w", status, domain.ErrValidation)
	}
	return s.repo.Update(ctx, id, owner, ports.BookUpdate{Status: &status})
}

// UpdateResume stores the reader's notes and/or rating. At least one must be set.
func (s *BookService) UpdateResume(ctx context.Context, id, owner string, input ports.UpdateResumeInput) (*domain.Book, error) {
	if input.Resume == nil && input.Rating == nil {
		return nil, fmt.Errorf("update resume: nothing to update: %w", domain.ErrValidation)
	}
	if r := input.Rating; r != nil && (*r < domain.MinRating || *r > domain.MaxRating) {
		return nil, fmt.Errorf("update resume: rating must be between %d and %d: %w", domain.MinRating, domain.MaxRating, domain.ErrValidation)
	}
	return s.repo.Update(ctx, id, owner, ports.BookUpdate{Resume: input.Resume, Rating: input.Rating})
}
