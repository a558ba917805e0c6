package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"negromart_seller/internal/forms"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"

	"github.com/spf13/cobra"
)

func newProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Vendor products",
	}

	var criteria dto.ProductCriteria
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria.Status = models.ProductStatus(status)
			page, err := appFrom(cmd).Services.ProductService.List(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPRICE\tSTOCK")
			for _, p := range page.Results {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Status, p.Price, p.Stock)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&criteria.Search, "search", "", "search by name")
	list.Flags().IntVar(&criteria.Page, "page", 0, "page number")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := appFrom(cmd).Services.ProductService.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %d deleted.\n", id)
			return nil
		},
	}

	related := &cobra.Command{
		Use:   "options",
		Short: "List categories and delivery options",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := appFrom(cmd).Services.ProductService.RelatedData(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CATEGORY\tID")
			for _, c := range data.Categories {
				fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.ID)
			}
			fmt.Fprintln(tw, "\nDELIVERY OPTION\tID\tFEE\tDAYS")
			for _, o := range data.DeliveryOptions {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\n", o.Name, o.ID, o.Fee, o.EstimatedDays)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(list, newProductSaveCommand("create"), newProductSaveCommand("edit"), remove, related)
	return cmd
}

// newProductSaveCommand builds "create" (from a JSON file) and "edit <id>"
// (server state plus flag overrides). Both go through forms.ProductForm.
func newProductSaveCommand(mode string) *cobra.Command {
	var (
		file            string
		images          []string
		price           float64
		stock           int
		status          string
		defaultDelivery int64
	)

	cmd := &cobra.Command{
		Short: "Create a product from a JSON file",
		Args:  cobra.NoArgs,
	}
	if mode == "edit" {
		cmd.Use = "edit <id>"
		cmd.Short = "Edit a product"
		cmd.Args = cobra.ExactArgs(1)
	} else {
		cmd.Use = "create"
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		ctx := cmd.Context()

		var (
			id   int64
			form forms.ProductForm
		)
		if mode == "edit" {
			var err error
			if id, err = parseID(args[0]); err != nil {
				return err
			}
			p, err := a.Services.ProductService.Get(ctx, id)
			if err != nil {
				return err
			}
			form = forms.ProductFormFrom(*p)
		}

		if file != "" {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &form); err != nil {
				return fmt.Errorf("invalid product file: %w", err)
			}
		}

		flags := cmd.Flags()
		if flags.Changed("price") {
			form.Price = price
		}
		if flags.Changed("stock") {
			form.Stock = stock
		}
		if flags.Changed("status") {
			form.Status = models.ProductStatus(status)
		}
		if flags.Changed("default-delivery") {
			form.SetDefaultDelivery(defaultDelivery)
		}
		for _, path := range images {
			up, err := readUpload(path)
			if err != nil {
				return err
			}
			form.Images = append(form.Images, models.NewFileSlot(up.Name, up.ContentType, up.Data))
		}

		p, err := form.Submit(ctx, a.Validator, a.Services.ProductService, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Product %d saved.\n", p.ID)
		return nil
	}

	cmd.Flags().StringVar(&file, "file", "", "product JSON")
	cmd.Flags().StringSliceVar(&images, "image", nil, "image file to upload (repeatable)")
	cmd.Flags().Float64Var(&price, "price", 0, "price")
	cmd.Flags().IntVar(&stock, "stock", 0, "stock")
	cmd.Flags().StringVar(&status, "status", "", "draft, published or archived")
	cmd.Flags().Int64Var(&defaultDelivery, "default-delivery", 0, "delivery option id to mark as the default")
	return cmd
}
