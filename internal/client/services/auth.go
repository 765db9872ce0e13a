package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// AuthService defines account operations for the REPL.
//
// Contract:
//   - Login: authenticate, persist the credential pair and mark the session logged in.
//   - Register: create the account, then log in with the same password.
//   - Logout: best-effort server logout; local credentials are always cleared.
//   - Profile / UpdateProfile / ChangePassword: authenticated account calls.
//   - Ping: API liveness.
//
// Password slices are wiped before the methods return.
type AuthService interface {
	Login(ctx context.Context, phone string, password []byte) error
	Register(ctx context.Context, phone, name, surname string, password []byte) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, name, surname string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirm []byte) error
	Ping(ctx context.Context) error
	LoggedIn() bool
}

type authService struct {
	client api.Client
	store  credentials.Store
	state  *session.State
	log    logging.Logger
}

func NewAuthService(client api.Client, store credentials.Store, state *session.State, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: client, store: store, state: state, log: log}
}

func (a *authService) Login(ctx context.Context, phone string, password []byte) error {
	defer common.WipeByteArray(password)

	phone = strings.TrimSpace(phone)
	if phone == "" || len(password) == 0 {
		return ErrEmptyField
	}

	creds, err := a.client.Login(ctx, models.LoginRequest{Phone: phone, Password: string(password)})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	a.state.MarkLoggedIn()
	a.log.Info(ctx, "logged in")
	return nil
}

func (a *authService) Register(ctx context.Context, phone, name, surname string, password []byte) error {
	defer common.WipeByteArray(password)

	phone, name, surname = strings.TrimSpace(phone), strings.TrimSpace(name), strings.TrimSpace(surname)
	if phone == "" || name == "" {
		return ErrEmptyField
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	err := a.client.Register(ctx, models.RegisterRequest{
		Phone:    phone,
		Name:     name,
		Surname:  surname,
		Password: string(password),
	})
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}

	pw := make([]byte, len(password))
	copy(pw, password)
	return a.Login(ctx, phone, pw)
}

// Logout marks the session logged out before the server call, so a refresh
// failing during it is not reported as an expired session.
func (a *authService) Logout(ctx context.Context) error {
	held, err := a.store.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read credentials before logout", "error", err)
	}
	a.state.MarkLoggedOut(nil)

	if !held.IsZero() {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn(ctx, "server logout failed", "error", err)
		}
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) Profile(ctx context.Context) (models.User, error) {
	if !a.state.LoggedIn() {
		return models.User{}, ErrNotLoggedIn
	}
	return a.client.Me(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, name, surname string) error {
	if !a.state.LoggedIn() {
		return ErrNotLoggedIn
	}
	name, surname = strings.TrimSpace(name), strings.TrimSpace(surname)
	if name == "" {
		return ErrEmptyField
	}
	return a.client.UpdateProfile(ctx, models.ProfileUpdate{Name: name, Surname: surname})
}

// ChangePassword validates the new password locally, then changes it for the
// phone of the current profile.
func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm []byte) error {
	defer common.WipeByteArray(oldPassword)
	defer common.WipeByteArray(newPassword)
	defer common.WipeByteArray(confirm)

	if !a.state.LoggedIn() {
		return ErrNotLoggedIn
	}
	if string(newPassword) != string(confirm) {
		return ErrPasswordsMismatch
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	me, err := a.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	return a.client.ChangePassword(ctx, models.PasswordChange{
		Phone:       me.Phone,
		OldPassword: string(oldPassword),
		NewPassword: string(newPassword),
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) LoggedIn() bool {
	return a.state.LoggedIn()
}
