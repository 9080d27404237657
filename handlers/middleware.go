package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const RunIDKey contextKey = "runId"

// RunIDHeader echoes the run id back to the client.
const RunIDHeader = "X-Run-Id"

// GetRunID extracts the run id from the request context.
func GetRunID(r *http.Request) string {
	if val, ok := r.Context().Value(RunIDKey).(string); ok {
		return val
	}
	return ""
}

// RunIDMiddleware tags every request with a fresh run id so the log lines of
// one calculation can be correlated.
func RunIDMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runID := uuid.NewString()

		ctx := context.WithValue(e.Request.Context(), RunIDKey, runID)
		e.Request = e.Request.WithContext(ctx)
		e.Response.Header().Set(RunIDHeader, runID)

		app.Logger().Debug("request started",
			"runId", runID,
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
		)
		return e.Next()
	}
}
