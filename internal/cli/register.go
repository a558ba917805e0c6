package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"negromart_seller/internal/registration"

	"github.com/spf13/cobra"
)

func newRegisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Seller application wizard",
	}
	cmd.AddCommand(
		newRegisterStatusCommand(),
		newRegisterSetCommand(),
		newRegisterFillCommand(),
		newRegisterSubmitCommand(),
		newRegisterResetCommand(),
	)
	return cmd
}

// resumeWizard loads the saved draft and prints the one-time re-upload warning.
func resumeWizard(cmd *cobra.Command) (*registration.Wizard, error) {
	w := appFrom(cmd).Wizard()
	if _, err := w.Resume(cmd.Context()); err != nil {
		return nil, err
	}
	return w, nil
}

// printReuploadWarning shows the one-time warning, minus slots already re-attached.
func printReuploadWarning(out io.Writer, w *registration.Wizard) {
	pending := make(map[string]bool)
	for _, slot := range w.PendingReuploads() {
		pending[slot] = true
	}

	var slots []string
	for _, slot := range w.ReuploadWarning() {
		if pending[slot] {
			slots = append(slots, slot)
		}
	}
	if len(slots) > 0 {
		fmt.Fprintf(out, "Files are not kept between sessions. Please re-upload: %s\n", strings.Join(slots, ", "))
	}
}

func newRegisterStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the draft and the first step that still needs work",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resumeWizard(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printReuploadWarning(out, w)

			d := w.Draft()
			fmt.Fprintf(out, "Business: %s (%s)\n", d.BusinessName, d.SellerType)
			fmt.Fprintf(out, "Contact:  %s %s, %s, %s\n", d.FirstName, d.LastName, d.Email, d.Contact)
			fmt.Fprintf(out, "Payment:  %s\n", d.PaymentMethod.Method)

			for w.Step() != registration.StepReview {
				if err := w.Next(); err != nil {
					fmt.Fprintf(out, "Step %q is incomplete:\n", w.Step())
					printFieldErrors(out, w.Errors())
					return nil
				}
			}
			fmt.Fprintln(out, "Ready to submit.")
			return nil
		},
	}
}

func newRegisterSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field>=<value>...",
		Short: "Set draft fields, e.g. business_name=Acme about.bio=Hello",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resumeWizard(cmd)
			if err != nil {
				return err
			}

			values := make(map[string]string, len(args))
			for _, arg := range args {
				key, value, err := splitAssignment(arg)
				if err != nil {
					return err
				}
				values[key] = value
			}

			var applyErr error
			err = w.Update(cmd.Context(), func(d *registration.Draft) {
				applyErr = setDraftFields(d, values)
			})
			if applyErr != nil {
				return applyErr
			}
			return err
		},
	}
}

func newRegisterFillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <draft.json>",
		Short: "Merge a JSON file into the draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			w, err := resumeWizard(cmd)
			if err != nil {
				return err
			}

			var decodeErr error
			err = w.Update(cmd.Context(), func(d *registration.Draft) {
				decodeErr = json.Unmarshal(data, d)
			})
			if decodeErr != nil {
				return fmt.Errorf("invalid draft file: %w", decodeErr)
			}
			return err
		},
	}
}

func newRegisterSubmitCommand() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Attach documents and submit the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			w, err := resumeWizard(cmd)
			if err != nil {
				return err
			}

			for _, f := range files {
				slot, path, err := splitAssignment(f)
				if err != nil {
					return err
				}
				up, err := readUpload(path)
				if err != nil {
					return err
				}
				if err := w.SetFile(ctx, slot, up.Name, up.ContentType, up.Data); err != nil {
					return err
				}
			}
			printReuploadWarning(out, w)

			res, err := w.Submit(ctx)
			if err != nil {
				if errs := w.Errors(); len(errs) > 0 {
					fmt.Fprintf(out, "Please fix step %q:\n", w.Step())
					printFieldErrors(out, errs)
				}
				return err
			}

			fmt.Fprintf(out, "Application %d submitted. %s\n", res.ID, res.Detail)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&files, "file", nil, "document as slot=path, e.g. license=./license.pdf (repeatable)")
	return cmd
}

func newRegisterResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return registration.NewDraftStore(appFrom(cmd).Storage).Clear(cmd.Context())
		},
	}
}

// setDraftFields assigns dotted JSON field names through a JSON round trip,
// so the names match the draft's wire shape.
func setDraftFields(d *registration.Draft, values map[string]string) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return err
	}

	for key, value := range values {
		parts := strings.Split(key, ".")
		node := tree
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				return fmt.Errorf("unknown field %q", key)
			}
			node = child
		}
		leaf := parts[len(parts)-1]

		switch leaf {
		case "latitude", "longitude":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s must be a number", key)
			}
			node[leaf] = f
		default:
			node[leaf] = value
		}
	}

	raw, err = json.Marshal(tree)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var updated registration.Draft
	if err := dec.Decode(&updated); err != nil {
		return fmt.Errorf("invalid field: %w", err)
	}
	*d = updated
	return nil
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", name, errs[name])
	}
}
