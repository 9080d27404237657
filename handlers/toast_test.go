package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

// decodeToast reads the showToast payload from the HX-Trigger header.
func decodeToast(t *testing.T, header http.Header) toastDetail {
	t.Helper()

	trigger := header.Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	raw, ok := parsed[ShowToastEvent]
	if !ok {
		t.Fatalf("expected %s key in HX-Trigger JSON, got %s", ShowToastEvent, trigger)
	}

	var toast toastDetail
	if err := json.Unmarshal(raw, &toast); err != nil {
		t.Fatalf("showToast value is not valid JSON: %v", err)
	}
	return toast
}

func TestErrorToast(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	if err := ErrorToast(e, http.StatusBadRequest, "Something went wrong"); err != nil {
		t.Fatalf("ErrorToast() error = %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Reswap"); got != "none" {
		t.Errorf("expected HX-Reswap none, got %q", got)
	}
	if rec.Body.String() != "Something went wrong" {
		t.Errorf("expected message body, got %q", rec.Body.String())
	}

	toast := decodeToast(t, rec.Header())
	if toast.Message != "Something went wrong" {
		t.Errorf("expected message %q, got %q", "Something went wrong", toast.Message)
	}
	if toast.Type != "error" {
		t.Errorf("expected type error, got %q", toast.Type)
	}
}

func TestErrorToast_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		e := &core.RequestEvent{}
		e.Response = rec

		if err := ErrorToast(e, code, "x"); err != nil {
			t.Fatalf("ErrorToast() error = %v", err)
		}
		if rec.Code != code {
			t.Errorf("expected %d, got %d", code, rec.Code)
		}
	}
}
