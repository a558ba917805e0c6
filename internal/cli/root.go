// Package cli is the seller-center command line: one cobra command per
// dashboard page, all sharing an app.App built from config.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"negromart_seller/internal/app"
	"negromart_seller/internal/config"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/notifications"

	"github.com/spf13/cobra"
)

type contextKey struct{}

// New builds the root command. Extra app options are passed through to app.New.
func New(opts ...app.Option) *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "sellercenter",
		Short:         "Negromart Seller Center",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			env := cfg.App.Env
			if verbose {
				env = "development"
			}
			logger.Init(env)

			// views print from channel goroutines
			out := &syncWriter{w: cmd.OutOrStdout()}
			cmd.SetOut(out)
			appOpts := append([]app.Option{app.WithToaster(printToaster(out))}, opts...)
			a, err := app.New(cmd.Context(), cfg, appOpts...)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, a))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newNotificationsCommand(),
		newDashboardCommand(),
		newOrdersCommand(),
		newProductsCommand(),
		newPaymentCommand(),
		newPayoutsCommand(),
		newReviewsCommand(),
		newHoursCommand(),
		newRegisterCommand(),
	)
	return cmd
}

// Execute runs the root command until done or interrupted.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := New().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		return 1
	}
	return 0
}

func appFrom(cmd *cobra.Command) *app.App {
	return cmd.Context().Value(contextKey{}).(*app.App)
}

func printToaster(w io.Writer) notifications.Toaster {
	return notifications.ToasterFunc(func(t notifications.Toast) {
		if t.URL != "" {
			fmt.Fprintf(w, "[%s] %s (%s)\n", t.Title, t.Message, t.URL)
			return
		}
		fmt.Fprintf(w, "[%s] %s\n", t.Title, t.Message)
	})
}
