// Package services contains the resource API modules of the gradebook
// client. Each method maps to exactly one backend endpoint.
// This file defines the authentication service: login, registration,
// password change and logout, plus the writes to the local session record
// those calls imply.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gradebook/internal/client/client"
	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/client/session"
)

// ErrNotLoggedIn is returned by calls that need a stored session when
// there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist the session record on success.
//   - Register: create a pending account.
//   - ChangePassword: change the current user's password; the backend ends
//     the session, so the local record is cleared on success.
//   - Logout: notify the backend and always clear the local record.
//   - RegisterConfig: report whether self-registration is open.
//   - Session: the currently stored record.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Message, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (*models.Message, error)
	Logout(ctx context.Context) error
	RegisterConfig(ctx context.Context) (*models.RegisterConfig, error)
	Session(ctx context.Context) (session.Session, error)
}

type authService struct {
	api   client.API
	store session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(api client.API, store session.Store) AuthService {
	return &authService{api: api, store: store}
}

// invalid turns a local validation failure into the client error taxonomy.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", client.ErrValidation, err)
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	req := models.LoginRequest{Username: username, Password: password}
	if err := models.Validate(req); err != nil {
		return nil, invalid(err)
	}

	var resp models.LoginResponse
	if err := a.api.DoJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || !resp.Role.Valid() {
		return nil, fmt.Errorf("login: malformed response (role %q)", resp.Role)
	}

	if err := a.store.Save(ctx, session.FromLogin(&resp)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &resp, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Message, error) {
	if err := models.Validate(req); err != nil {
		return nil, invalid(err)
	}
	var msg models.Message
	if err := a.api.DoJSON(ctx, http.MethodPost, "/auth/register", nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ChangePassword takes the user id from the stored session.
func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*models.Message, error) {
	s, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !s.IsAuthenticated() {
		return nil, ErrNotLoggedIn
	}
	userID, err := strconv.ParseInt(s.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: stored user id %q", ErrNotLoggedIn, s.UserID)
	}

	req := models.ChangePasswordRequest{UserID: userID, OldPassword: oldPassword, NewPassword: newPassword}
	if err := models.Validate(req); err != nil {
		return nil, invalid(err)
	}

	var msg models.Message
	if err := a.api.DoJSON(ctx, http.MethodPost, "/auth/change_password", nil, req, &msg); err != nil {
		return nil, err
	}
	if err := a.store.Clear(ctx); err != nil {
		return &msg, fmt.Errorf("clear session: %w", err)
	}
	return &msg, nil
}

// Logout clears the local record even when the backend call fails. The
// backend error, if any, is still returned.
func (a *authService) Logout(ctx context.Context) error {
	callErr := a.api.DoJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	if err := a.store.Clear(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(callErr, fmt.Errorf("clear session: %w", err))
	}
	return callErr
}

func (a *authService) RegisterConfig(ctx context.Context) (*models.RegisterConfig, error) {
	var cfg models.RegisterConfig
	if err := a.api.DoJSON(ctx, http.MethodGet, "/auth/register_config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *authService) Session(ctx context.Context) (session.Session, error) {
	return a.store.Load(ctx)
}
