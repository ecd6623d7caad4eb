package handler

import "github.com/readtrack/books-api/internal/core/domain"

// Passwords are capped at 72 bytes, the most bcrypt will hash.
type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Name     string `json:"name"     validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type refreshTokensRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type createdUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type signupData struct {
	User createdUserResponse `json:"user"`
}

type sessionData struct {
	Tokens domain.TokenPair `json:"tokens"`
	User   userResponse     `json:"user"`
}

type tokensData struct {
	Tokens domain.TokenPair `json:"tokens"`
}

func toUserResponse(u *domain.User) userResponse {
	if u == nil {
		return userResponse{}
	}
	return userResponse{Email: u.Email, Name: u.Name}
}
