package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"negromart_seller/internal/services/dto"
	"negromart_seller/pkg/apperrors"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand() *cobra.Command {
	var (
		email    string
		password string
		otp      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx := cmd.Context()
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if email == "" {
				email = prompt(in, out, "Email: ")
			}
			if password == "" {
				password = readSecret(cmd.InOrStdin(), in, out, "Password: ")
			}

			err := a.Services.AuthService.Login(ctx, &dto.LoginRequest{Email: email, Password: password})
			if apperrors.Is(err, apperrors.ErrOTPRequired) {
				if otp == "" {
					otp = prompt(in, out, "One-time code: ")
				}
				err = a.Services.AuthService.VerifyOTP(ctx, otp)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "vendor email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&otp, "otp", "", "one-time code, if the server asks for one")

	resend := &cobra.Command{
		Use:   "resend-otp",
		Short: "Send the one-time code again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appFrom(cmd).Services.AuthService.ResendOTP(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Code sent.")
			return nil
		},
	}
	cmd.AddCommand(resend)
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appFrom(cmd).Services.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check the stored session against the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if !a.Session.IsAuthenticated() {
				return apperrors.NewUnauthorizedError("Not signed in")
			}
			if err := a.Services.AuthService.Verify(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as vendor %s.\n", a.Session.VendorID())
			return nil
		},
	}
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// readSecret reads without echo when the input is an interactive terminal.
func readSecret(src io.Reader, in *bufio.Reader, out io.Writer, label string) string {
	f, ok := src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(in, out, label)
	}
	fd := int(f.Fd())
	fmt.Fprint(out, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return ""
	}
	return string(secret)
}
