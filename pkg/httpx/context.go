package httpx

import "context"

type ctxKey string

const (
	// CtxKeyAppClientID identifies the partner application making an API call.
	CtxKeyAppClientID ctxKey = "app_client_id"
	// CtxKeyAppName is the partner application's display name.
	CtxKeyAppName ctxKey = "app_name"
	// CtxKeyOperator identifies the logged-in admin operator.
	CtxKeyOperator ctxKey = "operator"
)

// WithAppIdentity records the verified partner application in the context.
func WithAppIdentity(ctx context.Context, clientID, appName string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAppClientID, clientID)
	return context.WithValue(ctx, CtxKeyAppName, appName)
}

// AppIdentityFromCtx returns the verified partner application, if any.
func AppIdentityFromCtx(ctx context.Context) (clientID, appName string, ok bool) {
	clientID, ok = ctx.Value(CtxKeyAppClientID).(string)
	if !ok {
		return "", "", false
	}
	appName, _ = ctx.Value(CtxKeyAppName).(string)
	return clientID, appName, true
}

// WithOperator records the authenticated admin operator in the context.
func WithOperator(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, CtxKeyOperator, username)
}

// OperatorFromCtx returns the authenticated operator username, if any.
func OperatorFromCtx(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(CtxKeyOperator).(string)
	return op, ok
}
