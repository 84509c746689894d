package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"servo_control/internal/models"
	"servo_control/internal/service"
)

func TestHealth(t *testing.T) {
	s, _ := newTestServices(&mockDispatcher{})
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestGetState_ReflectsHub(t *testing.T) {
	s, hub := newTestServices(&mockDispatcher{})
	r := newTestRouter(s)

	hub.DisplayConnection(models.Connected, "Connected")
	hub.DisplayAngle("90")
	hub.DisplayMode("manual")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/servo/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var d models.Display
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("unmarshal display: %v", err)
	}
	if d.Connection != "Connected" || d.Angle != "90" || d.Mode != "manual" || d.Class != "status-ok" {
		t.Fatalf("unexpected display: %+v", d)
	}
}

func TestSendManual(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantCode  int
		wantCalls int
		wantAngle int
	}{
		{"valid angle", `{"angle":90}`, http.StatusAccepted, 1, 90},
		{"zero is valid", `{"angle":0}`, http.StatusAccepted, 1, 0},
		{"upper bound", `{"angle":180}`, http.StatusAccepted, 1, 180},
		{"above range", `{"angle":181}`, http.StatusBadRequest, 0, 0},
		{"negative", `{"angle":-1}`, http.StatusBadRequest, 0, 0},
		{"missing", `{}`, http.StatusBadRequest, 0, 0},
		{"not a number", `{"angle":"ninety"}`, http.StatusBadRequest, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &mockDispatcher{result: sentDispatch("mode=manual&angle=90")}
			s, _ := newTestServices(d)
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/servo/manual", tc.body))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if d.manualCalls != tc.wantCalls {
				t.Fatalf("SendManual calls=%d, want %d", d.manualCalls, tc.wantCalls)
			}
			if tc.wantCalls > 0 && d.lastAngle != tc.wantAngle {
				t.Fatalf("angle=%d, want %d", d.lastAngle, tc.wantAngle)
			}
		})
	}
}

func TestSendMode(t *testing.T) {
	d := &mockDispatcher{result: sentDispatch("mode=sweep")}
	s, _ := newTestServices(d)
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/servo/mode", `{"mode":"sweep"}`))
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if d.modeCalls != 1 || d.lastMode != "sweep" {
		t.Fatalf("SendMode calls=%d mode=%q", d.modeCalls, d.lastMode)
	}

	var resp struct {
		Status    string `json:"status"`
		CommandID string `json:"command_id"`
		Query     string `json:"query"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != statusAccepted || resp.Query != "mode=sweep" || resp.CommandID != d.result.ID.String() {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// mode is required
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/servo/mode", `{}`))
	if w.Code != http.StatusBadRequest || d.modeCalls != 1 {
		t.Fatalf("missing mode: status=%d calls=%d", w.Code, d.modeCalls)
	}
}

func TestSendSequence(t *testing.T) {
	cases := []struct {
		name       string
		result     service.Dispatch
		err        error
		wantCode   int
		wantStatus string
		wantError  string
	}{
		{
			name:       "sent",
			result:     sentDispatch("mode=sequence&angles=0%2C+90%2C+180"),
			wantCode:   http.StatusAccepted,
			wantStatus: statusAccepted,
		},
		{
			name:       "send failure still accepted",
			result:     service.Dispatch{Outcome: service.OutcomeFailed, Query: "mode=sequence&angles=1"},
			wantCode:   http.StatusAccepted,
			wantStatus: statusAccepted,
		},
		{
			name:       "empty input ignored",
			result:     service.Dispatch{Outcome: service.OutcomeSkipped},
			wantCode:   http.StatusOK,
			wantStatus: statusIgnored,
		},
		{
			name:      "validation error",
			err:       service.ErrInvalidSequence,
			wantCode:  http.StatusBadRequest,
			wantError: service.ErrInvalidSequence.Error(),
		},
		{
			name:      "unexpected error",
			err:       errors.New("boom"),
			wantCode:  http.StatusInternalServerError,
			wantError: errSendCommand,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &mockDispatcher{result: tc.result, err: tc.err}
			s, _ := newTestServices(d)
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/servo/sequence", `{"angles":"0, 90, 180"}`))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if d.sequenceCalls != 1 || d.lastSequence != "0, 90, 180" {
				t.Fatalf("SendSequence calls=%d text=%q", d.sequenceCalls, d.lastSequence)
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tc.wantStatus != "" && resp["status"] != tc.wantStatus {
				t.Fatalf("status field=%q, want %q", resp["status"], tc.wantStatus)
			}
			if tc.wantError != "" && resp["error"] != tc.wantError {
				t.Fatalf("error field=%q, want %q", resp["error"], tc.wantError)
			}
		})
	}
}

func TestSendSequence_BadBody(t *testing.T) {
	d := &mockDispatcher{}
	s, _ := newTestServices(d)
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/servo/sequence", `{"angles":`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if d.sequenceCalls != 0 {
		t.Fatalf("dispatcher must not be called on a bad body")
	}
}
