package handler

import "github.com/readtrack/books-api/internal/core/domain"

// --- Request types ---

type listBooksRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending active done"`
}

type bookIDRequest struct {
	BookID string `query:"bookId" validate:"required"`
}

type createBookRequest struct {
	Name   string `json:"name"   validate:"required,max=200"`
	Author string `json:"author" validate:"required,max=200"`
	Year   *int   `json:"year"   validate:"omitempty,gte=0,lte=9999"`
	Pages  int    `json:"pages"  validate:"required,gt=0"`
}

type updateStatusRequest struct {
	BookID string `json:"bookId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending active done"`
}

type updateResumeRequest struct {
	BookID string  `json:"bookId" validate:"required"`
	Resume *string `json:"resume" validate:"omitempty,max=5000"`
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// --- Response types ---

type booksData struct {
	Books []*domain.Book `json:"books"`
}

type bookData struct {
	Book *domain.Book `json:"book"`
}
