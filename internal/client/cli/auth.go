package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gradebook/internal/client/client"
	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register creates a pending account. It is refused up front when the
// backend has self-registration switched off.
func (a *App) Register(ctx context.Context) error {
	cfg, err := a.auth.RegisterConfig(ctx)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	if !cfg.AllowRegister {
		a.println("Registration is closed, ask an administrator for an account")
		return nil
	}

	var req models.RegisterRequest
	if req.Username, err = getSimpleText(a.reader, "Enter user name", a.out); err != nil {
		return err
	}
	if req.Name, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (admin|teacher)", a.out)
	if err != nil {
		return err
	}
	req.Role = models.Role(role)

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	msg, err := a.auth.Register(ctx, req)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	a.println(orDefault(msg.Msg, "Registered, waiting for approval"))
	return nil
}

// Login authenticates and then enters "/", which the guard turns into the
// landing page of the role (or the password change page).
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	resp, err := a.auth.Login(ctx, userName, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.println("Server unavailable, try again later")
		}
		return a.fail(ctx, "login", err)
	}

	a.resetView()
	a.log.Info(ctx, "logged in", "username", resp.Username, "role", resp.Role)
	a.printf("Welcome, %s\n", resp.Username)
	a.enter(ctx, router.LoginPath)
	return nil
}

// Logout ends the session locally even if the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.resetView()
	if err != nil {
		a.log.Warn(ctx, "logout request failed, local session cleared anyway", "error", err)
	}
	a.println("Logged out")
	a.enter(ctx, router.LoginPath)
	return nil
}

// ChangePassword handles "passwd". On success the server ends the session
// and the user has to log in again.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.enter(ctx, router.ChangePasswordPath) {
		return nil
	}

	oldPassword, err := getPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer wipe(oldPassword)
	newPassword, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer wipe(newPassword)

	msg, err := a.auth.ChangePassword(ctx, string(oldPassword), string(newPassword))
	if err != nil {
		return a.fail(ctx, "passwd", err)
	}
	a.resetView()
	a.println(orDefault(msg.Msg, "Password changed, please log in again"))
	a.enter(ctx, router.LoginPath)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.auth.Session(ctx)
	if err != nil {
		return a.fail(ctx, "whoami", err)
	}
	if !s.IsAuthenticated() {
		a.println("not logged in")
		return nil
	}
	line := fmt.Sprintf("%s (id %s, role %s)", s.Username, s.UserID, s.Role)
	if s.MustChangePassword {
		line += ", password change pending"
	}
	a.println(line)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
