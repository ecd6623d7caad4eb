package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/readtrack/books-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account. No tokens are issued until login.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  successResponse{data=signupData}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, signupData{
		User: createdUserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Login authenticates a user and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse{data=sessionData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, sessionData{Tokens: res.Tokens, User: toUserResponse(res.User)})
}

// RefreshTokens exchanges a refresh token for a new pair. The previous pair
// stops working at the gate immediately.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshTokensRequest  true  "Refresh token"
// @Success      200   {object}  successResponse{data=tokensData}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/refresh-tokens [post]
func (h *AuthHandler) RefreshTokens(c echo.Context) error {
	var req refreshTokensRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, tokensData{Tokens: pair})
}

// Current returns the caller's identity and the pair on record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=sessionData}
// @Failure      401  {object}  errorResponse
// @Router       /auth/current [get]
func (h *AuthHandler) Current(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}

	res := h.authService.Current(session)
	return respond(c, http.StatusOK, sessionData{Tokens: res.Tokens, User: toUserResponse(res.User)})
}

// Logout clears the caller's token pair.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := SessionFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), session.User.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
