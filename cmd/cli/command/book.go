package command

// book.go covers catalog browsing, search, downloads and the admin-side
// catalog management commands.

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storynest/cmd/cli/command/client"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Browse and manage the book catalog",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog books",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		c := apiClient()
		resp, err := c.ListBooks(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}
		defer syncSession(c)

		for _, b := range resp.Data {
			fmt.Printf("%4d  %-40s  %7.2f  %s\n", b.ID, b.Title, b.Price, b.Category)
		}
		fmt.Printf("page %d/%d, %d books total\n", resp.Page, resp.TotalPages, resp.Total)
		return nil
	},
}

var bookShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a book's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		c := apiClient()
		b, err := c.GetBook(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Title:       %s\n", b.Title)
		fmt.Printf("Price:       %.2f\n", b.Price)
		fmt.Printf("Category:    %s\n", b.Category)
		fmt.Printf("Age range:   %s\n", b.Age)
		fmt.Printf("Rating:      %.1f\n", b.Rate)
		if b.Description != "" {
			fmt.Printf("Description: %s\n", b.Description)
		}
		return nil
	},
}

var bookSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.SearchBooksRequest
		req.Query, _ = cmd.Flags().GetString("query")
		req.Category, _ = cmd.Flags().GetString("category")
		req.Age, _ = cmd.Flags().GetString("age")
		req.Gender, _ = cmd.Flags().GetString("gender")
		if cmd.Flags().Changed("min-price") {
			v, _ := cmd.Flags().GetFloat64("min-price")
			req.MinPrice = &v
		}
		if cmd.Flags().Changed("max-price") {
			v, _ := cmd.Flags().GetFloat64("max-price")
			req.MaxPrice = &v
		}

		c := apiClient()
		books, err := c.SearchBooks(cmd.Context(), &req)
		if err != nil {
			return err
		}
		defer syncSession(c)

		for _, b := range books {
			fmt.Printf("%4d  %-40s  %7.2f  %s\n", b.ID, b.Title, b.Price, b.Category)
		}
		fmt.Printf("%d result(s)\n", len(books))
		return nil
	},
}

var bookDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a book you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("book-%d.pdf", id)
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		c := apiClient()
		if _, err := c.DownloadBook(cmd.Context(), id, f); err != nil {
			os.Remove(output)
			return err
		}
		defer syncSession(c)

		fmt.Printf("Saved to %s\n", output)
		return nil
	},
}

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := collectBookFields(cmd)
		filePath, _ := cmd.Flags().GetString("file")
		coverPath, _ := cmd.Flags().GetString("cover")

		c := apiClient()
		b, err := c.AddBook(cmd.Context(), fields, filePath, coverPath)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Created book %d: %s\n", b.ID, b.Title)
		return nil
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a catalog book (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		fields := collectBookFields(cmd)
		filePath, _ := cmd.Flags().GetString("file")
		coverPath, _ := cmd.Flags().GetString("cover")

		c := apiClient()
		b, err := c.UpdateBook(cmd.Context(), id, fields, filePath, coverPath)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Updated book %d: %s\n", b.ID, b.Title)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catalog book (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		c := apiClient()
		if err := c.DeleteBook(cmd.Context(), id); err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Deleted book %d\n", id)
		return nil
	},
}

// collectBookFields turns the set flags into multipart form fields, leaving
// untouched flags out so partial updates stay partial.
func collectBookFields(cmd *cobra.Command) map[string]string {
	fields := map[string]string{}
	for _, name := range []string{"title", "category", "age", "gender", "description"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			fields[name] = v
		}
	}
	for _, name := range []string{"price", "rate"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			fields[name] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return fields
}

func addBookMetadataFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().Float64("price", 0, "Price")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().String("age", "", "Age range, e.g. 3-5")
	cmd.Flags().String("gender", "", "Target gender")
	cmd.Flags().Float64("rate", 0, "Rating")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("file", "", "Path to the book content file")
	cmd.Flags().String("cover", "", "Path to the cover image")
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookShowCmd)
	bookCmd.AddCommand(bookSearchCmd)
	bookCmd.AddCommand(bookDownloadCmd)
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookDeleteCmd)

	bookListCmd.Flags().Int("page", 1, "Page number")
	bookListCmd.Flags().Int("page-size", 20, "Books per page")

	bookSearchCmd.Flags().StringP("query", "q", "", "Search text")
	bookSearchCmd.Flags().String("category", "", "Filter by category")
	bookSearchCmd.Flags().String("age", "", "Filter by age range")
	bookSearchCmd.Flags().String("gender", "", "Filter by target gender")
	bookSearchCmd.Flags().Float64("min-price", 0, "Minimum price")
	bookSearchCmd.Flags().Float64("max-price", 0, "Maximum price")

	bookDownloadCmd.Flags().StringP("output", "o", "", "Output file path")

	addBookMetadataFlags(bookAddCmd)
	bookAddCmd.MarkFlagRequired("title")
	bookAddCmd.MarkFlagRequired("price")
	addBookMetadataFlags(bookUpdateCmd)
}
