package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

// Key layout:
//
//	user:<id>            hash with the user's fields and current token pair
//	user:email:<email>   id of the user registered with that email
const (
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"
)

// maxTxAttempts bounds retries of a WATCHed transaction under contention.
const maxTxAttempts = 3

const (
	fieldEmail        = "email"
	fieldName         = "name"
	fieldPasswordHash = "password_hash"
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldCreatedAt    = "created_at"
	fieldUpdatedAt    = "updated_at"
)

// UserRepository keeps users in Redis hashes. The email index is claimed with
// SETNX so two signups for one email cannot both succeed.
type UserRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(client redis.UniversalClient) *UserRepository {
	return &UserRepository{client: client, now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	claimed, err := r.client.SetNX(ctx, emailKey(user.Email), id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		return nil, domain.ErrEmailInUse
	}

	created := &domain.User{
		ID:           id,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
	err = r.client.HSet(ctx, userKey(id),
		fieldEmail, created.Email,
		fieldName, created.Name,
		fieldPasswordHash, created.PasswordHash,
		fieldCreatedAt, created.CreatedAt.Format(time.RFC3339Nano),
		fieldUpdatedAt, created.UpdatedAt.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		// Release the email so the user can retry.
		_ = r.client.Del(context.WithoutCancel(ctx), emailKey(user.Email)).Err()
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return userFromHash(id, fields)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.client.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return r.FindByID(ctx, id)
}

// UpdateTokens writes or clears both token fields. The key is WATCHed so a
// user removed between the existence check and EXEC is never recreated as a
// partial hash; a concurrent write to the same user retries the transaction.
func (r *UserRepository) UpdateTokens(ctx context.Context, id string, tokens *domain.TokenPair) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	key := userKey(id)
	update := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrUserNotFound
		}

		updatedAt := r.now().UTC().Format(time.RFC3339Nano)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if tokens == nil {
				pipe.HDel(ctx, key, fieldAccessToken, fieldRefreshToken)
			} else {
				pipe.HSet(ctx, key, fieldAccessToken, tokens.AccessToken, fieldRefreshToken, tokens.RefreshToken)
			}
			pipe.HSet(ctx, key, fieldUpdatedAt, updatedAt)
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = r.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserNotFound):
		return err
	default:
		return fmt.Errorf("update tokens: %w", err)
	}
}

func userKey(id string) string     { return userKeyPrefix + id }
func emailKey(email string) string { return emailKeyPrefix + email }

func userFromHash(id string, fields map[string]string) (*domain.User, error) {
	u := &domain.User{
		ID:           id,
		Email:        fields[fieldEmail],
		Name:         fields[fieldName],
		PasswordHash: fields[fieldPasswordHash],
	}

	var err error
	if u.CreatedAt, err = parseTime(fields[fieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	if u.UpdatedAt, err = parseTime(fields[fieldUpdatedAt]); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}

	access, hasAccess := fields[fieldAccessToken]
	refresh, hasRefresh := fields[fieldRefreshToken]
	if hasAccess && hasRefresh {
		u.Tokens = &domain.TokenPair{AccessToken: access, RefreshToken: refresh}
	}
	return u, nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}
