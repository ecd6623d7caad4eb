package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

// BookHandler serves the caller's own collection. Every route sits behind the
// Auth middleware and is scoped to the session's user.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /books.
//
// @Summary      List the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, active, done)
// @Success      200     {object}  successResponse{data=booksData}
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req listBooksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	books, err := h.service.ListBooks(c.Request().Context(), session.User.ID, domain.BookStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, booksData{Books: books})
}

// Get handles GET /books/book?bookId=.
//
// @Summary      Get one book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  query     string  true  "Book id"
// @Success      200     {object}  successResponse{data=bookData}
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /books/book [get]
func (h *BookHandler) Get(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req bookIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.service.GetBook(c.Request().Context(), req.BookID, session.User.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, bookData{Book: book})
}

// Create handles POST /books/create.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  successResponse{data=bookData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /books/create [post]
func (h *BookHandler) Create(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req createBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.service.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Owner:  session.User.ID,
		Name:   req.Name,
		Author: req.Author,
		Year:   req.Year,
		Pages:  req.Pages,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, bookData{Book: book})
}

// Delete handles DELETE /books/delete?bookId=.
//
// @Summary      Remove a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  query     string  true  "Book id"
// @Success      200     {object}  successResponse{data=bookData}
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /books/delete [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req bookIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.service.DeleteBook(c.Request().Context(), req.BookID, session.User.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, bookData{Book: book})
}

// UpdateStatus handles PATCH /books/update-status.
//
// @Summary      Change a book's reading status
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateStatusRequest  true  "Book id and new status"
// @Success      200   {object}  successResponse{data=bookData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /books/update-status [patch]
func (h *BookHandler) UpdateStatus(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.service.UpdateStatus(c.Request().Context(), req.BookID, session.User.ID, domain.BookStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, bookData{Book: book})
}

// UpdateResume handles PATCH /books/update-resume.
//
// @Summary      Save notes and rating for a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateResumeRequest  true  "Book id, resume and/or rating"
// @Success      200   {object}  successResponse{data=bookData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /books/update-resume [patch]
func (h *BookHandler) UpdateResume(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}
	var req updateResumeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.service.UpdateResume(c.Request().Context(), req.BookID, session.User.ID, ports.UpdateResumeInput{
		Resume: req.Resume,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, bookData{Book: book})
}
