// Package session keeps the client-held authentication record: token, user
// identity, role and the forced-password-change flag.
//
// The record lives in a key/value Store under the keys listed below and is
// always cleared as a group. A record is authenticated only when both the
// role and the token are present; any other combination is treated as
// corrupted.
package session

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// Storage keys.
const (
	KeyAccessToken        = "access_token"
	KeyUserID             = "user_id"
	KeyUserRole           = "user_role"
	KeyUsername           = "username"
	KeyMustChangePassword = "must_change_password"
)

// Keys lists every key that belongs to a session record.
var Keys = []string{KeyAccessToken, KeyUserID, KeyUserRole, KeyUsername, KeyMustChangePassword}

type Session struct {
	AccessToken        string
	UserID             string
	Role               models.Role
	Username           string
	MustChangePassword bool
}

// IsAuthenticated reports whether both role and token are present.
func (s Session) IsAuthenticated() bool {
	return s.Role != "" && s.AccessToken != ""
}

// Consistent is false when exactly one of role and token is present.
func (s Session) Consistent() bool {
	return (s.Role == "") == (s.AccessToken == "")
}

// FromLogin builds the record written after a successful login.
func FromLogin(resp *models.LoginResponse) Session {
	s := Session{
		AccessToken:        resp.AccessToken,
		Role:               resp.Role,
		Username:           resp.Username,
		MustChangePassword: resp.MustChangePassword,
	}
	if resp.UserID != 0 {
		s.UserID = strconv.FormatInt(resp.UserID, 10)
	}
	return s
}

// toValues flattens s into storage key/value pairs. Empty fields are omitted.
func (s Session) toValues() map[string]string {
	values := make(map[string]string, len(Keys))
	put := func(k, v string) {
		if v != "" {
			values[k] = v
		}
	}
	put(KeyAccessToken, s.AccessToken)
	put(KeyUserID, s.UserID)
	put(KeyUserRole, string(s.Role))
	put(KeyUsername, s.Username)
	values[KeyMustChangePassword] = strconv.FormatBool(s.MustChangePassword)
	return values
}

func fromValues(values map[string]string) Session {
	return Session{
		AccessToken:        values[KeyAccessToken],
		UserID:             values[KeyUserID],
		Role:               models.Role(values[KeyUserRole]),
		Username:           values[KeyUsername],
		MustChangePassword: values[KeyMustChangePassword] == "true",
	}
}

// Store persists the session record.
//
// Load returns the zero Session when nothing is stored. Save replaces the
// whole record. Clear removes every key in one step; it is idempotent.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
