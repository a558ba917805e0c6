package cli

import (
	"fmt"

	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"

	"github.com/spf13/cobra"
)

func newReviewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Product reviews",
	}

	var (
		criteria dto.ReviewCriteria
		status   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria.Status = models.ReviewStatus(status)
			page, err := appFrom(cmd).Services.ReviewService.List(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tPRODUCT\tCUSTOMER\tRATING\tSTATUS\tCOMMENT")
			for _, r := range page.Results {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.ProductName, r.CustomerName, r.Rating, r.Status, r.Comment)
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVar(&criteria.Rating, "rating", 0, "filter by rating")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().IntVar(&criteria.Page, "page", 0, "page number")

	var (
		reply     string
		newStatus string
	)
	moderate := &cobra.Command{
		Use:   "moderate <id>",
		Short: "Reply to a review or change its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req dto.PatchReviewRequest
			if cmd.Flags().Changed("reply") {
				req.Reply = &reply
			}
			if cmd.Flags().Changed("status") {
				s := models.ReviewStatus(newStatus)
				req.Status = &s
			}

			r, err := appFrom(cmd).Services.ReviewService.Patch(cmd.Context(), id, &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review %d is %s.\n", r.ID, r.Status)
			return nil
		},
	}
	moderate.Flags().StringVar(&reply, "reply", "", "public reply")
	moderate.Flags().StringVar(&newStatus, "status", "", "approved, rejected or pending")

	cmd.AddCommand(list, moderate)
	return cmd
}
