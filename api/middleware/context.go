package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxEmail     contextKey = "user_email"
	ctxRequestID contextKey = "request_id"
)

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxUserID)
}

// EmailFromContext returns the email claim of the authenticated user, if the token carried one.
func EmailFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxEmail)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxRequestID)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withValue(ctx, ctxUserID, userID)
}

func WithEmail(ctx context.Context, email string) context.Context {
	return withValue(ctx, ctxEmail, email)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, ctxRequestID, requestID)
}
