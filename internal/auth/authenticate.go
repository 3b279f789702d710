package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SchemeName is the security scheme upload operations declare when a
// secret token is configured.
const SchemeName = "bearerAuth"

// Config is the security scheme configuration for the API.
var Config = map[string]*huma.SecurityScheme{
	SchemeName: {
		Type:   "http",
		Scheme: "bearer",
	},
}

// Security is the requirement attached to protected operations.
var Security = []map[string][]string{
	{SchemeName: {}},
}

// BearerTokenAuth returns a middleware function that rejects requests to
// protected operations unless their Authorization header is exactly
// "Bearer <secret>". It runs before the request body is read.
// With an empty secret every request passes.
func BearerTokenAuth(api huma.API, secret string, log *slog.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if secret == "" || !isAuthRequired(ctx.Operation()) {
			next(ctx)
			return
		}

		if TokenIsValid(ctx.Header("Authorization"), secret) {
			next(ctx)
			return
		}

		log.InfoContext(ctx.Context(), "Authentication failed",
			"operation", ctx.Operation().OperationID)
		_ = huma.WriteErr(api, ctx, http.StatusForbidden, "Unauthorized")
	}
}

func isAuthRequired(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, opScheme := range op.Security {
		if _, ok := opScheme[SchemeName]; ok {
			return true
		}
	}
	return false
}

// TokenIsValid compares an Authorization header with the configured secret
// in constant time. An empty secret never matches.
func TokenIsValid(header string, secret string) bool {
	if secret == "" {
		return false
	}
	want := "Bearer " + secret
	return subtle.ConstantTimeCompare([]byte(header), []byte(want)) == 1
}
