package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type credentialFlags struct {
	username string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "administrator username")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "password, read from stdin when omitted")
}

// resolve reads the password from in when it was not given as a flag.
func (f *credentialFlags) resolve(in io.Reader) error {
	if f.password != "" {
		return nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read password: %w", err)
	}
	f.password = strings.TrimRight(line, "\r\n")

	return nil
}

func newRegisterCommand(app *App) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an administrator and sign in as it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}

			username, err := app.api.Register(cmd.Context(), creds.username, creds.password)
			if err != nil {
				return err
			}

			app.session.SignIn(username, app.api.Token())
			if err = app.save(); err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Registration successful. Signed in as %s.\n", username)
			return nil
		},
	}
	creds.bind(cmd)

	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}

			username, err := app.api.Login(cmd.Context(), creds.username, creds.password)
			if err != nil {
				return err
			}

			app.session.SignIn(username, app.api.Token())
			if err = app.save(); err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Login successful. Signed in as %s.\n", username)
			return nil
		},
	}
	creds.bind(cmd)

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.api.Logout(cmd.Context()); err != nil {
				app.log.Warn("Server logout failed, forgetting the session locally", "error", err)
			}

			app.session.SignOut()
			if err := app.save(); err != nil {
				return err
			}

			fmt.Fprintln(app.out, "Logged out successfully")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the administrator of the current session",
		Args:        cobra.NoArgs,
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, err := app.api.Dashboard(cmd.Context())
			if err != nil {
				return app.check(err)
			}

			fmt.Fprintf(app.out, "Welcome, %s\n", username)
			return nil
		},
	}
}
