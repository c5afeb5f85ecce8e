// ABOUTME: Account commands for the jobdash CLI
// ABOUTME: login, register, logout and whoami against the stored session

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
)

var (
	loginEmail    string
	loginPassword string

	registerInput client.Registration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Sign in to the backend. Missing --email or --password values are
prompted for interactively.`,
	Args: cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		creds := client.Credentials{Email: loginEmail, Password: loginPassword}
		if creds.Email == "" || creds.Password == "" {
			if err := promptCredentials(&creds); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return exitInvalid
			}
		}
		return runLogin(ctx, w, creds)
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runRegister(ctx, w, registerInput)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runLogout(w)
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runWhoami(ctx, w)
	}),
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	registerCmd.Flags().StringVar(&registerInput.FirstName, "first-name", "", "First name (required)")
	registerCmd.Flags().StringVar(&registerInput.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Account email (required)")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Account password (required)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// promptCredentials asks for whatever the flags left empty
func promptCredentials(creds *client.Credentials) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&creds.Email).
				Validate(modal.Required("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(modal.Required("Password")),
		),
	).Run()
}

// runLogin exchanges credentials for a token and stores it
func runLogin(ctx context.Context, w io.Writer, creds client.Credentials) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitInvalid
	}
	c, store := clientFor(cfg)

	creds.Email = strings.TrimSpace(creds.Email)
	token, err := c.Login(ctx, creds)
	if err != nil {
		return backendError(w, err)
	}
	if err := store.SetToken(token); err != nil {
		fmt.Fprintf(w, "Error: failed to save session: %v\n", err)
		return exitInvalid
	}
	if err := recentlogins.New(cfg.ConfigDir).Add(creds.Email); err != nil {
		slog.Warn("Failed to remember login email", "error", err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]string{"email": creds.Email, "status": "logged_in"})
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", creds.Email)
	}
	return exitOK
}

// runRegister creates an account. The user signs in separately.
func runRegister(ctx context.Context, w io.Writer, reg client.Registration) int {
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.FirstName == "" || reg.Email == "" || reg.Password == "" {
		fmt.Fprintln(w, "Error: --first-name, --email and --password are required")
		return exitInvalid
	}

	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitInvalid
	}
	if err := c.Register(ctx, reg); err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]string{"email": reg.Email, "status": "registered"})
	} else {
		fmt.Fprintf(w, "Account created for %s. Run 'jobdash login' to sign in.\n", reg.Email)
	}
	return exitOK
}

// runLogout clears the stored token
func runLogout(w io.Writer) int {
	_, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitInvalid
	}
	if err := store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitInvalid
	}
	fmt.Fprintln(w, "Logged out")
	return exitOK
}

// runWhoami prints the current user
func runWhoami(ctx context.Context, w io.Writer) int {
	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	user, err := c.FetchUser(ctx)
	if err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, user)
		return exitOK
	}
	fmt.Fprintln(w, formatUserHuman(user))
	return exitOK
}

// formatUserHuman formats a user for human readability
func formatUserHuman(u *client.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	out := fmt.Sprintf(`Name:  %s
Email: %s`, name, u.Email)
	if u.Role != "" {
		out += "\nRole:  " + u.Role
	}
	return out
}
