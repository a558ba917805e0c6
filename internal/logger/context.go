package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	vendorIDKey  contextKey = "vendor_id"
	viewKey      contextKey = "view"
)

// ============================================
// Context operations
// ============================================

// WithRequestID stores the outbound request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithVendorID stores the signed-in vendor id in the context.
func WithVendorID(ctx context.Context, vendorID string) context.Context {
	return context.WithValue(ctx, vendorIDKey, vendorID)
}

// WithView tags the context with the view that owns the work (bell, list, detail, wizard).
func WithView(ctx context.Context, view string) context.Context {
	return context.WithValue(ctx, viewKey, view)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetVendorID(ctx context.Context) string {
	if vendorID, ok := ctx.Value(vendorIDKey).(string); ok {
		return vendorID
	}
	return ""
}

func GetView(ctx context.Context) string {
	if view, ok := ctx.Value(viewKey).(string); ok {
		return view
	}
	return ""
}

// ============================================
// Context-aware logging
// ============================================

// FromContext builds a logger with request_id, vendor_id and view when present.
func FromContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()

	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if vendorID := GetVendorID(ctx); vendorID != "" {
		fields = append(fields, "vendor_id", vendorID)
	}

	if view := GetView(ctx); view != "" {
		fields = append(fields, "view", view)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs at error level with the error attached.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	fields := append([]any{"error", err.Error()}, args...)
	FromContext(ctx).Error(msg, fields...)
}
