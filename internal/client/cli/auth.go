package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/runnio/internal/client/guard"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/client/services"
	"github.com/dmitrijs2005/runnio/internal/common"
)

// Test seams for user input.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getOptionalText = GetOptionalText
)

func (a *App) loginPage(ctx context.Context, _ guard.Match) error {
	if st := a.auth.State(); st.IsAuthenticated() {
		a.info("Already signed in as %s. Use 'logout' to switch accounts.", st.Identity.Email)
		return nil
	}

	a.title("Log in")
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if !res.Success {
		a.failResult(res)
		return nil
	}

	a.success("Signed in as %s (%s)", res.Identity.Name, res.Identity.Role)
	return a.navigate(ctx, a.router.TakeReturnPath())
}

func (a *App) registerPage(ctx context.Context, _ guard.Match) error {
	if st := a.auth.State(); st.IsAuthenticated() {
		a.info("Already signed in as %s. Use 'logout' first.", st.Identity.Email)
		return nil
	}

	a.title("Create an account")
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return fmt.Errorf("read name: %w", err)
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}
	if !res.Success {
		a.failResult(res)
		return nil
	}

	a.success("Welcome, %s! Your account has been created.", res.Identity.Name)
	return a.navigate(ctx, a.router.TakeReturnPath())
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if !a.auth.State().IsAuthenticated() {
		a.info("You are not signed in.")
		return nil
	}
	a.auth.Logout(ctx)
	a.success("Signed out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	st := a.auth.State()
	switch {
	case st.Loading:
		a.info("Loading session…")
	case !st.IsAuthenticated():
		a.info("Not signed in.")
	default:
		a.info("%s <%s> (%s)", st.Identity.Name, st.Identity.Email, roleText(st.Identity.Role))
	}
	return nil
}

func (a *App) profilePage(_ context.Context, _ guard.Match) error {
	st := a.auth.State()
	if st.Identity == nil {
		a.info("%s", services.MsgNotSignedIn)
		return nil
	}
	a.title("Profile")
	return a.identity(st.Identity)
}

func (a *App) profileEditPage(ctx context.Context, _ guard.Match) error {
	cur := a.auth.State().Identity
	if cur == nil {
		a.info("%s", services.MsgNotSignedIn)
		return nil
	}
	a.title("Edit profile (press Enter to keep a value)")

	var upd models.ProfileUpdate
	var err error
	if upd.Name, err = getOptionalText(a.reader, "Name", cur.Name, a.out); err != nil {
		return fmt.Errorf("read name: %w", err)
	}
	if upd.Email, err = getOptionalText(a.reader, "Email", cur.Email, a.out); err != nil {
		return fmt.Errorf("read email: %w", err)
	}
	if upd.Phone, err = getOptionalText(a.reader, "Phone", cur.Phone, a.out); err != nil {
		return fmt.Errorf("read phone: %w", err)
	}

	if upd.Name == cur.Name && upd.Email == cur.Email && upd.Phone == cur.Phone {
		a.info("Nothing to update.")
		return nil
	}

	res, err := a.auth.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	if !res.Success {
		a.failResult(res)
		return nil
	}
	a.success("Profile updated.")
	return a.identity(res.Identity)
}
