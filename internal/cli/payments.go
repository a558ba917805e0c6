package cli

import (
	"fmt"
	"io"

	"negromart_seller/internal/forms"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/pkg/apperrors"

	"github.com/spf13/cobra"
)

func newPaymentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Payout destination",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the payment method",
		RunE: func(cmd *cobra.Command, args []string) error {
			pm, err := appFrom(cmd).Services.PaymentService.Get(cmd.Context())
			if apperrors.Is(err, apperrors.ErrPaymentMethodMissing) {
				fmt.Fprintln(cmd.OutOrStdout(), "No payment method set.")
				return nil
			}
			if err != nil {
				return err
			}
			printPaymentMethod(cmd.OutOrStdout(), pm)
			return nil
		},
	}

	var (
		method string
		form   forms.PaymentMethodForm
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the payment method",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			fields := form.PaymentMethod
			form.SetMethod(models.PaymentMethodType(method))
			switch form.Method {
			case models.PaymentMobileMoney:
				form.MobileNumber, form.MobileProvider = fields.MobileNumber, fields.MobileProvider
			case models.PaymentBank:
				form.BankName, form.AccountHolder, form.AccountNumber = fields.BankName, fields.AccountHolder, fields.AccountNumber
			case models.PaymentPayPal:
				form.PayPalAccount = fields.PayPalAccount
			}

			pm, err := form.Submit(cmd.Context(), a.Validator, a.Services.PaymentService)
			if err != nil {
				return err
			}
			printPaymentMethod(cmd.OutOrStdout(), pm)
			return nil
		},
	}
	f := set.Flags()
	f.StringVar(&method, "method", string(models.PaymentMobileMoney), "mobile_money, bank or paypal")
	f.StringVar(&form.MobileNumber, "mobile-number", "", "mobile money number")
	f.StringVar(&form.MobileProvider, "mobile-provider", "", "mobile money provider")
	f.StringVar(&form.BankName, "bank-name", "", "bank name")
	f.StringVar(&form.AccountHolder, "account-holder", "", "bank account holder")
	f.StringVar(&form.AccountNumber, "account-number", "", "bank account number")
	f.StringVar(&form.PayPalAccount, "paypal-account", "", "PayPal email")

	cmd.AddCommand(show, set)
	return cmd
}

func printPaymentMethod(w io.Writer, pm *models.PaymentMethod) {
	switch pm.Method {
	case models.PaymentMobileMoney:
		fmt.Fprintf(w, "Mobile money: %s (%s)\n", pm.MobileNumber, pm.MobileProvider)
	case models.PaymentBank:
		fmt.Fprintf(w, "Bank: %s, %s, %s\n", pm.BankName, pm.AccountHolder, pm.AccountNumber)
	case models.PaymentPayPal:
		fmt.Fprintf(w, "PayPal: %s\n", pm.PayPalAccount)
	default:
		fmt.Fprintf(w, "Unknown method %q\n", pm.Method)
	}
}

func newPayoutsCommand() *cobra.Command {
	var criteria dto.PayoutCriteria

	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Payout history",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := appFrom(cmd).Services.PayoutService.List(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "REFERENCE\tAMOUNT\tSTATUS\tMETHOD\tREQUESTED\tPROCESSED")
			for _, p := range page.Results {
				processed := "-"
				if p.ProcessedAt != nil {
					processed = formatTime(*p.ProcessedAt)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.Reference, formatMoney(p.Amount, p.Currency), p.Status, p.Method, formatTime(p.RequestedAt), processed)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&criteria.Status, "status", "", "filter by status")
	cmd.Flags().IntVar(&criteria.Page, "page", 0, "page number")
	return cmd
}
