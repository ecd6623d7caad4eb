package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "A", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.LoggedIn())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "b@x.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: "a@x.com"})
	require.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestUserRepository_ConcurrentSignupOneWins(t *testing.T) {
	repo := NewUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), &domain.User{Email: "race@x.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrEmailInUse)
	}
	require.Equal(t, 1, ok)
}

func TestUserRepository_UpdateTokens(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	u, err := repo.Create(ctx, &domain.User{Email: "a@x.com"})
	require.NoError(t, err)

	pair := &domain.TokenPair{AccessToken: "a1", RefreshToken: "r1"}
	require.NoError(t, repo.UpdateTokens(ctx, u.ID, pair))

	// Mutating the caller's pair must not reach the store.
	pair.AccessToken = "tampered"
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a1", got.Tokens.AccessToken)

	// Nor must mutating a returned user.
	got.Tokens.AccessToken = "tampered"
	again, _ := repo.FindByID(ctx, u.ID)
	require.Equal(t, "a1", again.Tokens.AccessToken)

	require.NoError(t, repo.UpdateTokens(ctx, u.ID, nil))
	cleared, _ := repo.FindByID(ctx, u.ID)
	require.False(t, cleared.LoggedIn())

	require.ErrorIs(t, repo.UpdateTokens(ctx, "missing", nil), domain.ErrUserNotFound)
}

func TestBookRepository_OwnerScoping(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, &domain.Book{Owner: "alice", Name: "Dune", Status: domain.BookPending})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, b.ID, "bob")
	require.ErrorIs(t, err, domain.ErrBookNotFound)

	status := domain.BookDone
	_, err = repo.Update(ctx, b.ID, "bob", ports.BookUpdate{Status: &status})
	require.ErrorIs(t, err, domain.ErrBookNotFound)

	_, err = repo.Delete(ctx, b.ID, "bob")
	require.ErrorIs(t, err, domain.ErrBookNotFound)

	got, err := repo.FindByID(ctx, b.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.BookPending, got.Status)
}

func TestBookRepository_ListAndUpdate(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older, _ := repo.Create(ctx, &domain.Book{Owner: "alice", Name: "old", Status: domain.BookPending, CreatedAt: base})
	newer, _ := repo.Create(ctx, &domain.Book{Owner: "alice", Name: "new", Status: domain.BookPending, CreatedAt: base.Add(time.Hour)})
	_, _ = repo.Create(ctx, &domain.Book{Owner: "bob", Name: "other", Status: domain.BookPending, CreatedAt: base})

	books, err := repo.List(ctx, ports.ListBooksFilter{Owner: "alice"})
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, newer.ID, books[0].ID)
	require.Equal(t, older.ID, books[1].ID)

	status := domain.BookActive
	rating := 4
	updated, err := repo.Update(ctx, older.ID, "alice", ports.BookUpdate{Status: &status, Rating: &rating})
	require.NoError(t, err)
	require.Equal(t, domain.BookActive, updated.Status)
	require.Equal(t, 4, *updated.Rating)

	active, err := repo.List(ctx, ports.ListBooksFilter{Owner: "alice", Status: domain.BookActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, older.ID, active[0].ID)

	deleted, err := repo.Delete(ctx, older.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, older.ID, deleted.ID)
	books, _ = repo.List(ctx, ports.ListBooksFilter{Owner: "alice"})
	require.Len(t, books, 1)
}

func TestAuditRepository_Events(t *testing.T) {
	repo := NewAuditRepository()
	require.NoError(t, repo.InsertEvent(context.Background(), domain.AuthEvent{Type: domain.EventLogin, UserID: "u"}))
	require.NoError(t, repo.InsertEvent(context.Background(), domain.AuthEvent{Type: domain.EventLogout, UserID: "u"}))

	events := repo.Events()
	require.Len(t, events, 2)
	require.Equal(t, domain.EventLogout, events[1].Type)
}
