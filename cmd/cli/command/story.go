package command

// story.go covers personalized books: create one from a catalog book, list
// and inspect them, download the generated file.

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Create and manage personalized books",
}

var storyCreateCmd = &cobra.Command{
	Use:   "create <book-id>",
	Short: "Personalize a catalog book for a child",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		name, _ := cmd.Flags().GetString("child-name")
		age, _ := cmd.Flags().GetInt("child-age")
		image, _ := cmd.Flags().GetString("child-image")

		c := apiClient()
		custom, err := c.Customize(cmd.Context(), bookID, name, age, image)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Created personalized book %d for %s\n", custom.ID, custom.ChildName)
		return nil
	},
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your personalized books",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		resp, err := c.ListCustomizations(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		for _, item := range resp.Items {
			title := "?"
			if item.Book != nil {
				title = item.Book.Title
			}
			fmt.Printf("%4d  %-40s  for %s (age %d)\n", item.ID, title, item.ChildName, item.ChildAge)
		}
		fmt.Printf("%d personalized book(s)\n", resp.Total)
		return nil
	},
}

var storyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a personalized book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customization id %q", args[0])
		}

		c := apiClient()
		custom, err := c.GetCustomization(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer syncSession(c)

		if custom.Book != nil {
			fmt.Printf("Base book:  %s\n", custom.Book.Title)
		}
		fmt.Printf("Child:      %s, age %d\n", custom.ChildName, custom.ChildAge)
		fmt.Printf("Has photo:  %v\n", custom.HasChildImage)
		fmt.Printf("Created:    %s\n", custom.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

var storyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a personalized book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customization id %q", args[0])
		}

		c := apiClient()
		if err := c.DeleteCustomization(cmd.Context(), id); err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Deleted personalized book %d\n", id)
		return nil
	},
}

var storyDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a personalized book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customization id %q", args[0])
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("story-%d.pdf", id)
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		c := apiClient()
		if _, err := c.DownloadCustomization(cmd.Context(), id, f); err != nil {
			os.Remove(output)
			return err
		}
		defer syncSession(c)

		fmt.Printf("Saved to %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storyCmd)
	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyShowCmd)
	storyCmd.AddCommand(storyDeleteCmd)
	storyCmd.AddCommand(storyDownloadCmd)

	storyCreateCmd.Flags().String("child-name", "", "The child's name")
	storyCreateCmd.Flags().Int("child-age", 0, "The child's age")
	storyCreateCmd.Flags().String("child-image", "", "Path to the child's photo")
	storyCreateCmd.MarkFlagRequired("child-name")
	storyCreateCmd.MarkFlagRequired("child-age")

	storyDownloadCmd.Flags().StringP("output", "o", "", "Output file path")
}
