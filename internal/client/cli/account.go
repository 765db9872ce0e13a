package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPasswordPrompt
)

// Register prompts for the account fields and creates the account. On
// success the user is logged in.
func (a *App) Register(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	surname, err := getSimpleText(a.reader, "Enter surname", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, phone, name, surname, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registered and logged in")
	return nil
}

// Login prompts for phone and password. The password is wiped by the service.
func (a *App) Login(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, phone, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\nphone: %s\n", u.Name, u.Surname, u.Phone)
	return nil
}

func (a *App) Rename(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	surname, err := getSimpleText(a.reader, "Enter new surname", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.UpdateProfile(ctx, name, surname); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	oldPassword, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	newPassword, err := getPassword(a.out, "Enter new password")
	if err != nil {
		common.WipeByteArray(oldPassword)
		return err
	}
	confirm, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		common.WipeByteArray(oldPassword)
		common.WipeByteArray(newPassword)
		return err
	}

	if err := a.auth.ChangePassword(ctx, oldPassword, newPassword, confirm); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}
