package cli

import (
	"fmt"

	"negromart_seller/internal/services/dto"

	"github.com/spf13/cobra"
)

func newDashboardCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Sales analytics overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := appFrom(cmd).Services.DashboardService.Load(cmd.Context(), dto.TrendPeriod(period))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := d.Summary
			fmt.Fprintf(out, "Revenue:  %s (%+.1f%%)\n", formatMoney(s.TotalRevenue, s.Currency), s.RevenueChange)
			fmt.Fprintf(out, "Orders:   %d (%+.1f%%)\n", s.TotalOrders, s.OrdersChange)
			fmt.Fprintf(out, "Average:  %s\n", formatMoney(s.AverageOrder, s.Currency))
			fmt.Fprintf(out, "Payouts:  %s pending\n", formatMoney(s.PendingPayouts, s.Currency))
			fmt.Fprintf(out, "Views:    %d product, %d store, %.1f%% conversion\n",
				d.Engagement.ProductViews, d.Engagement.StoreVisits, d.Engagement.ConversionRate)
			fmt.Fprintf(out, "Delivery: %.1f%% on time, %.1f days average\n\n",
				d.Delivery.OnTimeRate, d.Delivery.AverageDays)

			tw := newTable(out)
			fmt.Fprintf(tw, "DATE (%s)\tREVENUE\tORDERS\n", d.Trend.Period)
			for _, p := range d.Trend.Points {
				fmt.Fprintf(tw, "%s\t%.2f\t%d\n", p.Date, p.Revenue, p.Orders)
			}
			tw.Flush()
			fmt.Fprintln(out)

			tw = newTable(out)
			fmt.Fprintln(tw, "TOP PRODUCT\tUNITS\tREVENUE")
			for _, p := range d.TopProducts {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.Name, p.UnitsSold, p.Revenue)
			}
			tw.Flush()
			fmt.Fprintln(out)

			tw = newTable(out)
			fmt.Fprintln(tw, "ORDER STATUS\tCOUNT")
			for _, c := range d.OrderStatus {
				fmt.Fprintf(tw, "%s\t%d\n", c.Status, c.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&period, "period", string(dto.Period30Days), "trend period: 7d, 30d, 90d or 12m")
	return cmd
}
