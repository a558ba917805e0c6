package cli

import (
	"fmt"
	"io"
	"strings"

	"negromart_seller/internal/forms"
	"negromart_seller/internal/models"

	"github.com/spf13/cobra"
)

var dayIndex = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

func newHoursCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Opening hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := appFrom(cmd).Services.OpeningHoursService.List(cmd.Context())
			if err != nil {
				return err
			}
			printHours(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <day>=<HH:MM-HH:MM|closed>...",
		Short: "Set the hours of one or more weekdays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			existing, err := a.Services.OpeningHoursService.List(cmd.Context())
			if err != nil {
				return err
			}
			byDay := make(map[int]models.OpeningHours, len(existing))
			for _, h := range existing {
				byDay[h.Day] = h
			}

			var form forms.OpeningHoursForm
			for _, arg := range args {
				row, err := parseHours(arg)
				if err != nil {
					return err
				}
				row.ID = byDay[row.Day].ID
				form.Rows = append(form.Rows, row)
			}

			saved, err := form.Save(cmd.Context(), a.Validator, a.Services.OpeningHoursService)
			if err != nil {
				return err
			}
			printHours(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an opening-hours row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return appFrom(cmd).Services.OpeningHoursService.Delete(cmd.Context(), id)
		},
	}

	cmd.AddCommand(set, remove)
	return cmd
}

// parseHours reads "monday=08:00-17:00" or "sunday=closed".
func parseHours(arg string) (models.OpeningHours, error) {
	day, value, err := splitAssignment(arg)
	if err != nil {
		return models.OpeningHours{}, err
	}
	idx, ok := dayIndex[strings.ToLower(day)]
	if !ok {
		return models.OpeningHours{}, fmt.Errorf("unknown weekday %q", day)
	}

	row := models.OpeningHours{Day: idx}
	if strings.EqualFold(value, "closed") {
		row.IsClosed = true
		return row, nil
	}
	opensAt, closesAt, ok := strings.Cut(value, "-")
	if !ok {
		return models.OpeningHours{}, fmt.Errorf("expected HH:MM-HH:MM for %s, got %q", day, value)
	}
	row.OpenTime, row.CloseTime = opensAt, closesAt
	return row, nil
}

func printHours(w io.Writer, rows []models.OpeningHours) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDAY\tOPEN\tCLOSE")
	for _, h := range rows {
		if h.IsClosed {
			fmt.Fprintf(tw, "%d\t%s\tclosed\t\n", h.ID, h.DayName())
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", h.ID, h.DayName(), h.OpenTime, h.CloseTime)
	}
	tw.Flush()
}
