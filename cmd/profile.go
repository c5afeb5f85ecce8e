// ABOUTME: Profile command for the jobdash CLI
// ABOUTME: Updates name and password; unset name flags keep the current values

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/client"
)

var profileFlags struct {
	firstName string
	lastName  string
	password  string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the signed-in user's profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update first name, last name or password",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runProfileUpdate(ctx, w, profileFlags.firstName, profileFlags.lastName, profileFlags.password)
	}),
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFlags.firstName, "first-name", "", "New first name")
	profileUpdateCmd.Flags().StringVar(&profileFlags.lastName, "last-name", "", "New last name")
	profileUpdateCmd.Flags().StringVar(&profileFlags.password, "password", "", "New password")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileUpdate sends the full profile document. The backend replaces
// both name fields, so blank flags are filled from the current user.
func runProfileUpdate(ctx context.Context, w io.Writer, firstName, lastName, password string) int {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" && password == "" {
		fmt.Fprintln(w, "Error: nothing to update; pass --first-name, --last-name or --password")
		return exitInvalid
	}

	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	current, err := c.FetchUser(ctx)
	if err != nil {
		return backendError(w, err)
	}

	update := client.ProfileUpdate{
		FirstName: orValue(firstName, current.FirstName),
		LastName:  orValue(lastName, current.LastName),
		Password:  password,
	}
	if err := c.UpdateUser(ctx, update); err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, update)
		return exitOK
	}
	fmt.Fprintln(w, "Profile updated!")
	return exitOK
}

func orValue(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
