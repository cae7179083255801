package command

// root.go defines the root command for the storynest CLI and the shared
// client construction used by every subcommand.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storynest/cmd/cli/authentication"
	"storynest/cmd/cli/command/client"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "storynest",
	Short: "storynest - personalized children's book store CLI",
	Long: `storynest is a command line client for the StoryNest API. Use it to:
- browse and search the book catalog
- personalize a book with a child's name, age and photo
- request purchases and track their approval
- download approved books from your library

Use "storynest <command> --help" to see the available commands.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
}

// apiClient builds a client with any persisted session restored. A session
// that turns out to be expired wipes the stored credentials so the user is
// asked to login again instead of seeing repeated 401s.
func apiClient() *client.Client {
	c := client.New(apiURL)

	if creds, err := authentication.GetTokens(); err == nil {
		c.SetTokens(creds.AccessToken, creds.RefreshToken)
	}

	c.OnSessionExpired(func() {
		authentication.DeleteTokens()
	})
	return c
}

// persistSession writes the client's current token pair back to disk; the
// pair rotates on every refresh so commands call this before exiting.
func persistSession(c *client.Client, email string, isAdmin bool) error {
	access, refresh := c.Tokens()
	if access == "" && refresh == "" {
		return authentication.DeleteTokens()
	}
	return authentication.StoreTokens(&authentication.StoredCredentials{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        email,
		IsAdmin:      isAdmin,
	})
}

// syncSession re-persists a possibly rotated pair without touching the
// stored identity fields.
func syncSession(c *client.Client) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return
	}
	access, refresh := c.Tokens()
	if access == creds.AccessToken && refresh == creds.RefreshToken {
		return
	}
	persistSession(c, creds.Email, creds.IsAdmin)
}
