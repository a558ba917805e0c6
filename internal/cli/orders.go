package cli

import (
	"fmt"
	"io"

	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"

	"github.com/spf13/cobra"
)

func newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Vendor orders",
	}

	var criteria dto.OrderCriteria
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria.Status = models.OrderStatus(status)
			page, err := appFrom(cmd).Services.OrderService.List(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tREFERENCE\tSTATUS\tCUSTOMER\tTOTAL\tCREATED")
			for _, o := range page.Results {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.Reference, o.Status, o.CustomerName, formatMoney(o.Total, o.Currency), formatTime(o.CreatedAt))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&criteria.Search, "search", "", "search reference or customer")
	list.Flags().IntVar(&criteria.Page, "page", 0, "page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			order, err := appFrom(cmd).Services.OrderService.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), order)
			return nil
		},
	}

	var note string
	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc := appFrom(cmd).Services.OrderService
			order, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			updated, err := svc.UpdateStatus(cmd.Context(), id, order.Status, &dto.UpdateOrderStatusRequest{
				Status: models.OrderStatus(args[1]),
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s.\n", updated.Reference, updated.Status)
			return nil
		},
	}
	statusCmd.Flags().StringVar(&note, "note", "", "note for the customer")

	cmd.AddCommand(list, show, statusCmd)
	return cmd
}

func printOrder(w io.Writer, o *models.Order) {
	fmt.Fprintf(w, "Order %s (#%d) %s\n", o.Reference, o.ID, o.Status)
	fmt.Fprintf(w, "Customer: %s\n", o.CustomerName)
	if o.ShippingAddress != "" {
		fmt.Fprintf(w, "Ship to:  %s\n", o.ShippingAddress)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tVARIANT\tQTY\tUNIT PRICE")
	for _, item := range o.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", item.ProductName, item.VariantName, item.Quantity, item.UnitPrice)
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %s\n", formatMoney(o.Total, o.Currency))
}
