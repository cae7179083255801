package command

// profile.go covers the caller's own account plus the admin user-management
// commands.

import (
	"fmt"

	"github.com/spf13/cobra"

	"storynest/cmd/cli/command/client"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your account",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		p, err := c.Profile(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Name:    %s %s\n", p.FirstName, p.LastName)
		fmt.Printf("Email:   %s\n", p.Email)
		if p.Address != "" {
			fmt.Printf("Address: %s\n", p.Address)
		}
		if p.Phone != "" {
			fmt.Printf("Phone:   %s\n", p.Phone)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.UpdateProfileRequest
		for flag, dst := range map[string]**string{
			"first-name": &req.FirstName,
			"last-name":  &req.LastName,
			"address":    &req.Address,
			"phone":      &req.Phone,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}

		c := apiClient()
		p, err := c.UpdateProfile(cmd.Context(), &req)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Profile updated for %s\n", p.Email)
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := promptPassword("New password: ")
		if err != nil {
			return err
		}

		c := apiClient()
		if err := c.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Println("Password changed.")
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customer accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		admins, _ := cmd.Flags().GetBool("admins")

		c := apiClient()
		var resp *client.UserListResponse
		var err error
		if admins {
			resp, err = c.ListAdmins(cmd.Context())
		} else {
			resp, err = c.ListUsers(cmd.Context())
		}
		if err != nil {
			return err
		}
		defer syncSession(c)

		printUsers(resp.Users)
		return nil
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.AddUserRequest
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Address, _ = cmd.Flags().GetString("address")
		req.Phone, _ = cmd.Flags().GetString("phone")
		admin, _ := cmd.Flags().GetBool("admin")

		password, err := promptPassword("Password for the new account: ")
		if err != nil {
			return err
		}
		req.Password = password

		c := apiClient()
		u, err := c.AddUser(cmd.Context(), &req, admin)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Created account %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

var usersSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search accounts by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		resp, err := c.SearchUsers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer syncSession(c)

		printUsers(resp.Users)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.UpdateUserRequest
		for flag, dst := range map[string]**string{
			"first-name": &req.FirstName,
			"last-name":  &req.LastName,
			"email":      &req.Email,
			"address":    &req.Address,
			"phone":      &req.Phone,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		if cmd.Flags().Changed("admin") {
			v, _ := cmd.Flags().GetBool("admin")
			req.IsAdmin = &v
		}

		c := apiClient()
		u, err := c.UpdateUser(cmd.Context(), args[0], &req)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Updated account %s\n", u.Email)
		return nil
	},
}

func printUsers(users []client.UserResponse) {
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Printf("%-36s  %-6s  %s %s <%s>\n", u.ID, role, u.FirstName, u.LastName, u.Email)
	}
	fmt.Printf("%d account(s)\n", len(users))
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswordCmd)

	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersSearchCmd)
	usersCmd.AddCommand(usersUpdateCmd)

	profileUpdateCmd.Flags().String("first-name", "", "First name")
	profileUpdateCmd.Flags().String("last-name", "", "Last name")
	profileUpdateCmd.Flags().String("address", "", "Postal address")
	profileUpdateCmd.Flags().String("phone", "", "Phone number")

	usersListCmd.Flags().Bool("admins", false, "List admin accounts instead")

	usersAddCmd.Flags().String("first-name", "", "First name")
	usersAddCmd.Flags().String("last-name", "", "Last name")
	usersAddCmd.Flags().StringP("email", "e", "", "Email address")
	usersAddCmd.Flags().String("address", "", "Postal address")
	usersAddCmd.Flags().String("phone", "", "Phone number")
	usersAddCmd.Flags().Bool("admin", false, "Create an admin account")
	usersAddCmd.MarkFlagRequired("first-name")
	usersAddCmd.MarkFlagRequired("email")

	usersUpdateCmd.Flags().String("first-name", "", "First name")
	usersUpdateCmd.Flags().String("last-name", "", "Last name")
	usersUpdateCmd.Flags().StringP("email", "e", "", "Email address")
	usersUpdateCmd.Flags().String("address", "", "Postal address")
	usersUpdateCmd.Flags().String("phone", "", "Phone number")
	usersUpdateCmd.Flags().Bool("admin", false, "Grant or revoke the admin role")
}
