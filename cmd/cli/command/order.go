package command

// order.go covers purchase requests: submitting them, tracking their status
// and the admin approval queue.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storynest/cmd/cli/command/client"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Request purchases and track their approval",
}

var orderBookCmd = &cobra.Command{
	Use:   "book <book-id>",
	Short: "Request to buy a catalog book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		c := apiClient()
		req, err := c.RequestBook(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Purchase request %d submitted, status: %s\n", req.ID, req.Status)
		return nil
	},
}

var orderStoryCmd = &cobra.Command{
	Use:   "story <customization-id>",
	Short: "Request to buy one of your personalized books",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customization id %q", args[0])
		}

		c := apiClient()
		req, err := c.RequestCustomization(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Purchase request %d submitted, status: %s\n", req.ID, req.Status)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your purchase requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		resp, err := c.ListMyRequests(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		printRequests(resp.Items)
		return nil
	},
}

var orderQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List all purchase requests (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		resp, err := c.ListAllRequests(cmd.Context())
		if err != nil {
			return err
		}
		defer syncSession(c)

		printRequests(resp.Items)
		return nil
	},
}

var orderApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a purchase request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  processRequest("approve"),
}

var orderRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a purchase request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  processRequest("reject"),
}

func processRequest(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request id %q", args[0])
		}

		c := apiClient()
		req, err := c.ProcessRequest(cmd.Context(), id, action)
		if err != nil {
			return err
		}
		defer syncSession(c)

		fmt.Printf("Request %d is now %s\n", req.ID, req.Status)
		return nil
	}
}

func printRequests(items []client.PurchaseResponse) {
	for _, r := range items {
		what := "?"
		switch {
		case r.Customization != nil && r.Customization.Book != nil:
			what = fmt.Sprintf("%s (personalized for %s)", r.Customization.Book.Title, r.Customization.ChildName)
		case r.Book != nil:
			what = r.Book.Title
		}
		fmt.Printf("%4d  %-10s  %s\n", r.ID, r.Status, what)
	}
	fmt.Printf("%d request(s)\n", len(items))
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderBookCmd)
	orderCmd.AddCommand(orderStoryCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderQueueCmd)
	orderCmd.AddCommand(orderApproveCmd)
	orderCmd.AddCommand(orderRejectCmd)
}
