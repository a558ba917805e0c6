package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"
)

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// describe renders an error for the terminal, one field error per line.
func describe(err error) string {
	var fields map[string]string
	msg := err.Error()

	var verr *validator.ValidationError
	if apperrors.As(err, &verr) {
		fields = verr.Errors
		msg = "validation failed"
	} else if appErr, ok := apperrors.AsAppError(err); ok {
		msg = appErr.Message
		fields = appErr.FieldErrors()
	}

	if len(fields) == 0 {
		return msg
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(msg)
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
	}
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatMoney(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}
