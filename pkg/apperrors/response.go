package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// messageKeys are the body keys the seller API uses for a single, non-field message.
var messageKeys = []string{"detail", "message", "error", "non_field_errors"}

// FromResponse maps a non-2xx API response onto an AppError.
//
// Field-shaped bodies ({"contact": ["Enter a valid phone number."]}) end up in
// Details as map[string]string so forms can put them back on their fields.
// Anything else is flattened into Message.
func FromResponse(status int, body []byte, domain string) *AppError {
	code := codeForStatus(status)
	message := http.StatusText(status)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 300 && !strings.HasPrefix(text, "<") {
			message = text
		}
		return New(code, domain, message, status)
	}

	for _, key := range messageKeys {
		if v, ok := payload[key]; ok {
			if text := flatten(v); text != "" {
				message = text
			}
			delete(payload, key)
		}
	}

	fields := make(map[string]string)
	collectFields("", payload, fields)

	appErr := New(code, domain, message, status)
	if len(fields) > 0 {
		appErr.Details = fields
		if message == http.StatusText(status) {
			appErr.Message = flattenFields(fields)
		}
	}
	return appErr
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		if status >= 500 {
			return CodeInternalError
		}
		return CodeServerRejected
	}
}

func collectFields(prefix string, payload map[string]interface{}, out map[string]string) {
	for key, v := range payload {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := v.(map[string]interface{}); ok {
			collectFields(name, nested, out)
			continue
		}
		if text := flatten(v); text != "" {
			out[name] = text
		}
	}
}

func flatten(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if text := flatten(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// flattenFields renders a field map as one toast-sized line, in stable order.
func flattenFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return strings.Join(parts, "; ")
}
