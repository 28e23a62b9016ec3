package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/conduit-demo/app/internal/api"
	"github.com/conduit-demo/app/internal/crypto"
	"github.com/conduit-demo/app/internal/database"
	"github.com/conduit-demo/app/internal/logger"
	"github.com/conduit-demo/app/internal/server/middleware"
)

// UserStore is the subset of the generated queries used by the user handlers.
type UserStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	UpdateUser(ctx context.Context, arg database.UpdateUserParams) (database.User, error)
}

// TokenIssuer issues the access token returned with every user response.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// UserHandler serves the /api/users and /api/user endpoints.
type UserHandler struct {
	store          UserStore
	tokens         TokenIssuer
	passwordParams crypto.PasswordParams
}

func NewUserHandler(store UserStore, tokens TokenIssuer) *UserHandler {
	return &UserHandler{
		store:          store,
		tokens:         tokens,
		passwordParams: crypto.DefaultPasswordParams,
	}
}

// pg unique_violation
const uniqueViolation = "23505"

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user and returns it with an access token.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		api.RegisterRequest	true	"New user"
//	@Success		201		{object}	api.UserResponse
//	@Failure		400		{object}	api.ErrorResponse	"Malformed request"
//	@Failure		422		{object}	api.ErrorResponse	"Validation failed or user already exists"
//	@Router			/api/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondWithError(w, r, api.WrapMalformedRequestError(err, "invalid request body"))
		return
	}

	username := strings.TrimSpace(req.User.Username)
	email := strings.TrimSpace(req.User.Email)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if req.User.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		api.RespondWithError(w, r, api.NewValidationError(strings.Join(missing, ", ")+" can't be blank"))
		return
	}

	hash, err := crypto.HashPasswordWithParams(req.User.Password, h.passwordParams)
	if err != nil {
		api.RespondWithError(w, r, api.WrapInternalError(err, "failed to create user"))
		return
	}

	user, err := h.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		api.RespondWithError(w, r, storeError(err, "failed to create user"))
		return
	}

	logger.ContextWithLogAttrs(r.Context(), slog.String("user_id", user.ID.String()))

	h.respondWithUser(w, r, http.StatusCreated, user)
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges an email and password for an access token.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		api.LoginRequest	true	"Credentials"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	api.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	api.ErrorResponse	"Invalid email or password"
//	@Router			/api/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondWithError(w, r, api.WrapMalformedRequestError(err, "invalid request body"))
		return
	}

	// the same message is used for unknown users and bad passwords
	const invalidCredentials = "email or password is invalid"

	if req.User.Email == "" || req.User.Password == "" {
		api.RespondWithError(w, r, api.NewUnauthorizedError(invalidCredentials))
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.TrimSpace(req.User.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.RespondWithError(w, r, api.WrapUnauthorizedError(err, invalidCredentials))
			return
		}
		api.RespondWithError(w, r, api.WrapInternalError(err, "failed to log in"))
		return
	}

	if err := crypto.VerifyPassword(req.User.Password, user.PasswordHash); err != nil {
		api.RespondWithError(w, r, api.WrapUnauthorizedError(err, invalidCredentials))
		return
	}

	logger.ContextWithLogAttrs(r.Context(), slog.String("user_id", user.ID.String()))

	h.respondWithUser(w, r, http.StatusOK, user)
}

// CurrentUser godoc
//
//	@Summary		Get the current user
//	@Tags			Users
//	@Produce		json
//	@Security		TokenAuth
//	@Success		200	{object}	api.UserResponse
//	@Failure		401	{object}	api.ErrorResponse	"Missing or invalid token"
//	@Router			/api/user [get]
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadCurrentUser(w, r)
	if !ok {
		return
	}
	h.respondWithUser(w, r, http.StatusOK, user)
}

// UpdateUser godoc
//
//	@Summary		Update the current user
//	@Description	Only the fields present in the request are changed. A fresh token is returned.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			body	body		api.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	api.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	api.ErrorResponse	"Missing or invalid token"
//	@Failure		422		{object}	api.ErrorResponse	"Validation failed"
//	@Router			/api/user [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondWithError(w, r, api.WrapMalformedRequestError(err, "invalid request body"))
		return
	}

	user, ok := h.loadCurrentUser(w, r)
	if !ok {
		return
	}

	params := database.UpdateUserParams{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Bio:          user.Bio,
		Image:        user.Image,
	}

	u := req.User
	if u.Username != nil {
		if strings.TrimSpace(*u.Username) == "" {
			api.RespondWithError(w, r, api.NewValidationError("username can't be blank"))
			return
		}
		params.Username = strings.TrimSpace(*u.Username)
	}
	if u.Email != nil {
		if strings.TrimSpace(*u.Email) == "" {
			api.RespondWithError(w, r, api.NewValidationError("email can't be blank"))
			return
		}
		params.Email = strings.TrimSpace(*u.Email)
	}
	if u.Password != nil {
		hash, err := crypto.HashPasswordWithParams(*u.Password, h.passwordParams)
		if err != nil {
			api.RespondWithError(w, r, api.NewValidationError("password can't be blank"))
			return
		}
		params.PasswordHash = hash
	}
	if u.Bio != nil {
		params.Bio = u.Bio
	}
	if u.Image != nil {
		params.Image = u.Image
	}

	updated, err := h.store.UpdateUser(r.Context(), params)
	if err != nil {
		api.RespondWithError(w, r, storeError(err, "failed to update user"))
		return
	}

	h.respondWithUser(w, r, http.StatusOK, updated)
}

// loadCurrentUser fetches the user authenticated by middleware.Authenticate.
// The error response has been sent when ok is false.
func (h *UserHandler) loadCurrentUser(w http.ResponseWriter, r *http.Request) (database.User, bool) {
	userID, ok := middleware.ContextUserID(r.Context())
	if !ok {
		api.RespondWithError(w, r, api.NewUnauthorizedError("missing authorization token"))
		return database.User{}, false
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// the token is valid but the user has gone
			api.RespondWithError(w, r, api.WrapUnauthorizedError(err, "user not found"))
			return database.User{}, false
		}
		api.RespondWithError(w, r, api.WrapInternalError(err, "failed to load user"))
		return database.User{}, false
	}
	return user, true
}

func (h *UserHandler) respondWithUser(w http.ResponseWriter, r *http.Request, status int, user database.User) {
	token, err := h.tokens.Issue(user.ID.String())
	if err != nil {
		api.RespondWithError(w, r, api.WrapInternalError(err, "failed to issue token"))
		return
	}

	api.RespondWithJSONPayload(w, status, api.UserResponse{
		User: api.User{
			Email:    user.Email,
			Token:    token,
			Username: user.Username,
			Bio:      user.Bio,
			Image:    user.Image,
		},
	})
}

// storeError maps unique violations to a validation error naming the duplicated field.
func storeError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return api.NewValidationError("username has already been taken")
		case strings.Contains(pgErr.ConstraintName, "email"):
			return api.NewValidationError("email has already been taken")
		default:
			return api.NewValidationError("user already exists")
		}
	}
	return api.WrapInternalError(err, msg)
}
