package command

// library.go lists the books the user owns through approved purchases.

import (
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Show the books you own",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		resp, err := c.Library(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		for _, item := range resp.Items {
			switch {
			case item.Customization != nil:
				title := "?"
				if item.Customization.Book != nil {
					title = item.Customization.Book.Title
				}
				fmt.Printf("story %-4d  %s (personalized for %s)\n",
					item.Customization.ID, title, item.Customization.ChildName)
			case item.Book != nil:
				fmt.Printf("book  %-4d  %s\n", item.Book.ID, item.Book.Title)
			}
		}
		fmt.Printf("%d item(s) in your library\n", resp.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}
