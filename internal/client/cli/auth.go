package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and signs in through the state
// adapter, so the reducer slice tracks the whole pending/settled cycle. The
// password buffer is wiped before returning. Credential rejection is shown
// to the user, not returned: only I/O errors propagate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	creds := models.Credentials{Email: email, Password: string(password)}
	common.WipeByteArray(password)

	if err := a.adapter.LoginUser(ctx, creds); err != nil {
		fmt.Println("Login failed:", a.state.State().Error)
		return nil
	}

	fmt.Println("Success!")
	return nil
}

// Logout signs out unconditionally; it is a no-op when already signed out.
func (a *App) Logout(ctx context.Context) error {
	a.adapter.LogoutUser(ctx)
	fmt.Println("Signed out.")
	return nil
}

// Status prints the reducer slice of the session state.
func (a *App) Status(ctx context.Context) error {
	st := a.state.State()
	fmt.Println("authenticated:", st.IsAuthenticated)
	fmt.Println("loading:      ", st.IsLoading)
	if st.User != nil {
		fmt.Println("user:         ", st.User.Email)
	}
	if st.Error != "" {
		fmt.Println("error:        ", st.Error)
	}
	fmt.Println("token valid:  ", a.session.IsTokenValid())
	return nil
}

// Whoami prints the current user id as resolved by the context provider.
func (a *App) Whoami(ctx context.Context) error {
	if id, ok := a.users.UserID(); ok {
		fmt.Println(id)
	} else {
		fmt.Println("no current user")
	}
	return nil
}
