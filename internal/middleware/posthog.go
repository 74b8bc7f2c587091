package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tirtatour/travel_billing_app/internal/utils"
)

// PosthogMiddleware emits a business event for every successful API call.
// Lifecycle-specific events (verification, overdue, resolution) are emitted
// by the services themselves; this covers the generic API surface.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		c.Next()

		// Only successful calls are tracked.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Actor comes from the auth middleware; unauthenticated routes are not tracked.
		actorID, exists := GetActorIDFromContext(c)
		if !exists {
			return
		}

		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		for _, param := range c.Params {
			props["param_"+param.Key] = param.Value
		}

		posthogClient.Notify(c.Request.Context(), eventName, actorID, props)
	}
}

// routeEventName turns a route template into an event name, e.g.
// "/api/v1/invoices/:id/verify" becomes "api_v1_invoices_:id_verify".
// Unmatched routes (404s) produce an empty name.
func routeEventName(fullPath string) string {
	return strings.ReplaceAll(strings.TrimPrefix(fullPath, "/"), "/", "_")
}
