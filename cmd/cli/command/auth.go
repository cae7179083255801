package command

// auth.go handles login, registration and logout for the storynest CLI.

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"storynest/cmd/cli/authentication"
	"storynest/cmd/cli/command/client"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the StoryNest API server. Supports login, registration, logout.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new StoryNest account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.RegisterRequest
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Address, _ = cmd.Flags().GetString("address")
		req.Phone, _ = cmd.Flags().GetString("phone")

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		req.Password = password

		resp, err := apiClient().Register(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("Registration successful, please login to continue.")
		fmt.Printf("User ID: %s\n", resp.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your StoryNest account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		c := apiClient()
		resp, err := c.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := persistSession(c, resp.Email, resp.IsAdmin); err != nil {
			return fmt.Errorf("could not save session: %w", err)
		}

		fmt.Printf("Logged in as %s\n", resp.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your StoryNest account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		// Revocation is best effort, the local session goes away regardless.
		c.Logout(cmd.Context())

		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		profile, err := c.Profile(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("%s %s <%s>\n", profile.FirstName, profile.LastName, profile.Email)
		if profile.IsAdmin {
			fmt.Println("Role: admin")
		}
		return nil
	},
}

// promptPassword reads a password without echoing when attached to a
// terminal, so it never lands in shell history or process listings.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().String("first-name", "", "First name for the new account")
	registerCmd.Flags().String("last-name", "", "Last name for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().String("address", "", "Postal address")
	registerCmd.Flags().String("phone", "", "Phone number")
	registerCmd.MarkFlagRequired("first-name")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("email", "e", "", "Email address for the account")
	loginCmd.MarkFlagRequired("email")
}
