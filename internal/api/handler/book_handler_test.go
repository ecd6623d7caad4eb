package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

type stubBookService struct {
	lastOwner  string
	lastID     string
	lastStatus domain.BookStatus
	lastCreate ports.CreateBookInput
	lastResume ports.UpdateResumeInput
	err        error
}

func (s *stubBookService) book(id string) (*domain.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Book{ID: id, Owner: s.lastOwner, Name: "Dune", Status: domain.BookPending}, nil
}

func (s *stubBookService) ListBooks(_ context.Context, owner string, status domain.BookStatus) ([]*domain.Book, error) {
	s.lastOwner, s.lastStatus = owner, status
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Book{{ID: "b1", Owner: owner}}, nil
}

func (s *stubBookService) GetBook(_ context.Context, id, owner string) (*domain.Book, error) {
	s.lastID, s.lastOwner = id, owner
	return s.book(id)
}

func (s *stubBookService) CreateBook(_ context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	s.lastCreate, s.lastOwner = in, in.Owner
	return s.book("new")
}

func (s *stubBookService) DeleteBook(_ context.Context, id, owner string) (*domain.Book, error) {
	s.lastID, s.lastOwner = id, owner
	return s.book(id)
}

func (s *stubBookService) UpdateStatus(_ context.Context, id, owner string, status domain.BookStatus) (*domain.Book, error) {
	s.lastID, s.lastOwner, s.lastStatus = id, owner, status
	return s.book(id)
}

func (s *stubBookService) UpdateResume(_ context.Context, id, owner string, in ports.UpdateResumeInput) (*domain.Book, error) {
	s.lastID, s.lastOwner, s.lastResume = id, owner, in
	return s.book(id)
}

func withUser(c echo.Context, id string) echo.Context {
	WithSession(c, &domain.Session{User: &domain.User{ID: id}})
	return c
}

func TestBookHandler_List(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/books?status=done", nil), rec), "alice")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastOwner != "alice" || svc.lastStatus != domain.BookDone {
		t.Fatalf("unexpected call: owner=%q status=%q", svc.lastOwner, svc.lastStatus)
	}
	books := decodeEnvelope(t, rec)["books"].([]any)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}

	c = withUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/books?status=shelved", nil), httptest.NewRecorder()), "alice")
	expectHTTPError(t, h.List(c), http.StatusBadRequest)
}

func TestBookHandler_Get(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/books/book?bookId=b42", nil), rec), "alice")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastID != "b42" || svc.lastOwner != "alice" {
		t.Fatalf("unexpected call: id=%q owner=%q", svc.lastID, svc.lastOwner)
	}
	if decodeEnvelope(t, rec)["book"].(map[string]any)["id"] != "b42" {
		t.Fatal("unexpected book in response")
	}

	c = withUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/books/book", nil), httptest.NewRecorder()), "alice")
	expectHTTPError(t, h.Get(c), http.StatusBadRequest)
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{err: domain.ErrBookNotFound})

	c := withUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/books/book?bookId=b1", nil), httptest.NewRecorder()), "bob")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"name":"Dune","author":"Frank Herbert","year":1965,"pages":412}`
	c := withUser(e.NewContext(jsonRequest(http.MethodPost, "/books/create", body), rec), "alice")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	in := svc.lastCreate
	if in.Owner != "alice" || in.Name != "Dune" || in.Pages != 412 || in.Year == nil || *in.Year != 1965 {
		t.Fatalf("unexpected input: %+v", in)
	}

	for _, bad := range []string{`{"name":"x","author":"y"}`, `{"name":"x","author":"y","pages":-1}`, `{"author":"y","pages":3}`} {
		c = withUser(e.NewContext(jsonRequest(http.MethodPost, "/books/create", bad), httptest.NewRecorder()), "alice")
		expectHTTPError(t, h.Create(c), http.StatusBadRequest)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	rec := httptest.NewRecorder()
	c := withUser(e.NewContext(httptest.NewRequest(http.MethodDelete, "/books/delete?bookId=b7", nil), rec), "alice")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastID != "b7" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected result: id=%q code=%d", svc.lastID, rec.Code)
	}
}

func TestBookHandler_UpdateStatus(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c := withUser(e.NewContext(jsonRequest(http.MethodPatch, "/books/update-status", `{"bookId":"b1","status":"active"}`), httptest.NewRecorder()), "alice")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastStatus != domain.BookActive || svc.lastID != "b1" {
		t.Fatalf("unexpected call: %+v", svc)
	}

	c = withUser(e.NewContext(jsonRequest(http.MethodPatch, "/books/update-status", `{"bookId":"b1","status":"reading"}`), httptest.NewRecorder()), "alice")
	expectHTTPError(t, h.UpdateStatus(c), http.StatusBadRequest)
}

func TestBookHandler_UpdateResume(t *testing.T) {
	e := newTestEcho()
	svc := &stubBookService{}
	h := NewBookHandler(svc)

	c := withUser(e.NewContext(jsonRequest(http.MethodPatch, "/books/update-resume", `{"bookId":"b1","resume":"loved it","rating":5}`), httptest.NewRecorder()), "alice")
	if err := h.UpdateResume(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastResume.Resume == nil || *svc.lastResume.Resume != "loved it" || *svc.lastResume.Rating != 5 {
		t.Fatalf("unexpected input: %+v", svc.lastResume)
	}

	c = withUser(e.NewContext(jsonRequest(http.MethodPatch, "/books/update-resume", `{"bookId":"b1","rating":9}`), httptest.NewRecorder()), "alice")
	expectHTTPError(t, h.UpdateResume(c), http.StatusBadRequest)
}

func TestBookHandler_RequiresSession(t *testing.T) {
	e := newTestEcho()
	h := NewBookHandler(&stubBookService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), httptest.NewRecorder())
	if err := h.List(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
