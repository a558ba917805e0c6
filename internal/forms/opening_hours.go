package forms

import (
	"context"
	"strings"

	"negromart_seller/internal/models"
	"negromart_seller/internal/services"
	"negromart_seller/internal/validator"
)

type hoursRules struct {
	Day       int    `json:"day" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time" validate:"omitempty,hhmm"`
	CloseTime string `json:"close_time" validate:"omitempty,hhmm"`
}

// OpeningHoursForm edits the weekly schedule, one row per day.
type OpeningHoursForm struct {
	Rows []models.OpeningHours
}

// Validate reports errors as "<weekday>.<field>", e.g. "monday.close_time".
func (f *OpeningHoursForm) Validate(v *validator.Validator) error {
	errs := &validator.ValidationError{}
	seen := make(map[int]bool, len(f.Rows))

	for _, row := range f.Rows {
		ns := strings.ToLower(row.DayName())
		if ns == "" {
			ns = "day"
		}
		if err := errs.Merge(v.ValidateIn(ns, hoursRules{Day: row.Day, OpenTime: row.OpenTime, CloseTime: row.CloseTime})); err != nil {
			return err
		}
		if seen[row.Day] {
			errs.Add(ns+".day", "This day is listed twice")
		}
		seen[row.Day] = true

		if row.IsClosed {
			continue
		}
		if row.OpenTime == "" {
			errs.Add(ns+".open_time", "This field is required")
		}
		if row.CloseTime == "" {
			errs.Add(ns+".close_time", "This field is required")
		}
		// "HH:MM" strings order the same way as the times they hold
		if row.OpenTime != "" && row.CloseTime != "" && row.OpenTime >= row.CloseTime {
			errs.Add(ns+".close_time", "Closing time must be after opening time")
		}
	}
	return errs.OrNil()
}

// Save validates and writes every row: new rows are created, known rows updated.
func (f *OpeningHoursForm) Save(ctx context.Context, v *validator.Validator, svc services.OpeningHoursService) ([]models.OpeningHours, error) {
	if err := f.Validate(v); err != nil {
		return nil, err
	}

	saved := make([]models.OpeningHours, 0, len(f.Rows))
	for i := range f.Rows {
		row := f.Rows[i]
		if row.IsClosed {
			row.OpenTime, row.CloseTime = "", ""
		}

		var (
			out *models.OpeningHours
			err error
		)
		if row.ID == 0 {
			out, err = svc.Create(ctx, &row)
		} else {
			out, err = svc.Update(ctx, &row)
		}
		if err != nil {
			return saved, err
		}
		f.Rows[i].ID = out.ID
		saved = append(saved, *out)
	}
	return saved, nil
}
