package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pharmadesk/internal/client/forms"
	"github.com/dmitrijs2005/pharmadesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Login prompts for email and password, validates them and authenticates.
//
// Field errors are printed and nothing is sent. On success the catalog is
// loaded and the products screen is printed. The password buffer is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds, fieldErrs := forms.LoginForm{Email: email, Password: string(password)}.Validate()
	if len(fieldErrs) > 0 {
		a.printFieldErrors(fieldErrs)
		return fmt.Errorf("invalid login form")
	}

	resp := a.authService.Login(ctx, creds)
	if !resp.Success {
		a.printf("Login failed: %s\n", resp.Error)
		return fmt.Errorf("login failed: %s", resp.Error)
	}

	a.printf("Welcome, %s!\n", a.status())
	a.productService.Start(ctx)
	return a.List(ctx)
}

// Logout ends the session. The local session is gone afterwards even when
// the server call fails.
func (a *App) Logout(ctx context.Context) error {
	resp := a.authService.Logout(ctx)
	a.productService.Reset()

	if !resp.Success {
		a.printf("Logged out locally (server said: %s)\n", resp.Error)
		return fmt.Errorf("logout: %s", resp.Error)
	}
	a.printf("Logged out.\n")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.authService.User()
	if u == nil {
		a.printf("Not logged in.\n")
		return nil
	}
	if u.Name != "" {
		a.printf("%s <%s>\n", u.Name, u.Email)
	} else {
		a.printf("%s\n", u.Email)
	}
	return nil
}

func (a *App) printFieldErrors(errs forms.FieldErrors) {
	for _, field := range errs.Fields() {
		a.printf("  %s: %s\n", field, errs[field])
	}
}
