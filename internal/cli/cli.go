// Package cli is the empctl command tree: a terminal client for the athena API.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UnknownOlympus/athena/internal/client"
	"github.com/UnknownOlympus/athena/internal/session"
)

// AnnotationRequiresSession marks commands that only run for a signed-in administrator.
const AnnotationRequiresSession = "requires-session"

const (
	envPrefix      = "EMPCTL"
	defaultAPI     = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
)

var (
	ErrNotSignedIn    = errors.New("not signed in, run `empctl login` first")
	ErrSessionExpired = errors.New("session expired or invalid, run `empctl login` again")
	ErrNoSortField    = errors.New("--order needs --sort or an earlier sort")
)

var guarded = map[string]string{AnnotationRequiresSession: "true"}

// App holds what every command needs once the root command has started.
type App struct {
	log     *slog.Logger
	out     io.Writer
	session *session.Context
	api     *client.API
}

// NewRootCommand builds the empctl command tree. Log lines go to logOut, command output to cmd.OutOrStdout().
func NewRootCommand(logOut io.Writer) *cobra.Command {
	app := &App{}
	cfg := viper.New()
	var verbose bool

	root := &cobra.Command{
		Use:           "empctl",
		Short:         "Manage the employee directory from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			app.log = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
			app.out = cmd.OutOrStdout()

			if err := app.start(cfg); err != nil {
				return err
			}

			if cmd.Annotations[AnnotationRequiresSession] == "true" && !app.session.SignedIn() {
				return ErrNotSignedIn
			}

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("api", defaultAPI, "base URL of the athena API")
	flags.String("state", defaultStatePath(), "file keeping the session between runs")
	flags.Duration("timeout", defaultTimeout, "timeout of each API call")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log API calls")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	for _, name := range []string{"api", "state", "timeout"} {
		_ = cfg.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newEmployeesCommand(app),
		newThemeCommand(app),
		newSeedCommand(app),
	)

	return root
}

func (a *App) start(cfg *viper.Viper) error {
	appCtx, err := session.Load(cfg.GetString("state"))
	if err != nil {
		return err
	}
	a.session = appCtx

	a.api, err = client.NewAPI(a.log, cfg.GetString("api"), cfg.GetDuration("timeout"))
	if err != nil {
		return err
	}
	if appCtx.SignedIn() {
		a.api.SetToken(appCtx.State.Token)
	}

	a.log.Debug("Client started", "api", cfg.GetString("api"), "state", appCtx.Path())

	return nil
}

func (a *App) save() error {
	if err := a.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// check turns a rejected session into a sign-out so the next command asks for a login.
func (a *App) check(err error) error {
	if err == nil || !client.IsSessionError(err) {
		return err
	}

	a.session.SignOut()
	if saveErr := a.save(); saveErr != nil {
		a.log.Warn("Failed to forget expired session", "error", saveErr)
	}

	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "empctl", "state.json")
}
