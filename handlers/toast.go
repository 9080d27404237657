package handlers

import (
	"io"

	"github.com/angelofallars/htmx-go"
	"github.com/pocketbase/pocketbase/core"
)

// ShowToastEvent is the client event that displays a toast. Its detail is
// {"message": ..., "type": ...}.
const ShowToastEvent = "showToast"

type toastDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// toastTrigger builds the HX-Trigger entry for a toast of the given type
// ("success", "error", "info" or "warning").
func toastTrigger(toastType, message string) htmx.EventTrigger {
	return htmx.TriggerObject(ShowToastEvent, toastDetail{Message: message, Type: toastType})
}

// ErrorToast sends an error toast and prevents HTMX from swapping the error text into the DOM.
// HX-Reswap: none makes HTMX ignore the body while HX-Trigger still fires the toast.
// Non-HTMX clients get the message as plain text.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	e.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err := htmx.NewResponse().
		StatusCode(statusCode).
		Reswap(htmx.SwapNone).
		AddTrigger(toastTrigger("error", message)).
		Write(e.Response)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.Response, message)
	return err
}
