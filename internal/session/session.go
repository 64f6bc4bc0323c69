// Package session keeps the state of the command-line client between runs:
// who is signed in, the session token, the theme and the last table sort.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Themes the client knows about.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

// State is what survives between runs.
type State struct {
	Username  string `json:"username,omitempty"`
	Token     string `json:"token,omitempty"`
	Theme     string `json:"theme"`
	SortField string `json:"sort_field,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

// Context is the application context: the state plus where it is kept.
type Context struct {
	path  string
	State State
}

// Load reads the state stored at path. A missing file yields a fresh, signed-out state.
func Load(path string) (*Context, error) {
	appCtx := &Context{path: path, State: State{Theme: ThemeLight}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return appCtx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err = json.Unmarshal(data, &appCtx.State); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	if appCtx.State.Theme == "" {
		appCtx.State.Theme = ThemeLight
	}

	return appCtx, nil
}

// Path returns the file the state is saved to.
func (c *Context) Path() string {
	return c.path
}

// Save writes the state atomically, readable by the owner only since it holds the token.
func (c *Context) Save() error {
	data, err := json.MarshalIndent(c.State, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to restrict session file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err = os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// SignedIn reports whether a session token is held.
func (c *Context) SignedIn() bool {
	return c.State.Token != ""
}

// SignIn records a new session.
func (c *Context) SignIn(username, token string) {
	c.State.Username = username
	c.State.Token = token
}

// SignOut forgets the session. Theme and sort preferences stay.
func (c *Context) SignOut() {
	c.State.Username = ""
	c.State.Token = ""
}

// SetTheme switches to theme. An empty theme toggles between light and dark.
func (c *Context) SetTheme(theme string) error {
	switch theme {
	case "":
		if c.State.Theme == ThemeDark {
			c.State.Theme = ThemeLight
		} else {
			c.State.Theme = ThemeDark
		}
	case ThemeLight, ThemeDark:
		c.State.Theme = theme
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return nil
}
