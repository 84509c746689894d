package handlers

import (
	"context"
	"net/http"
	"strings"

	"servo_control/internal/reflector"
	"servo_control/internal/service"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ---- Service Mocks ----

type mockDispatcher struct {
	result service.Dispatch
	err    error

	manualCalls   int
	modeCalls     int
	sequenceCalls int
	lastAngle     int
	lastMode      string
	lastSequence  string
}

func (m *mockDispatcher) SendManual(ctx context.Context, c service.Controls) (service.Dispatch, error) {
	m.manualCalls++
	m.lastAngle = c.CurrentSliderAngle()
	return m.result, m.err
}

func (m *mockDispatcher) SendMode(ctx context.Context, c service.Controls) (service.Dispatch, error) {
	m.modeCalls++
	m.lastMode = c.TriggeredModeID()
	return m.result, m.err
}

func (m *mockDispatcher) SendSequence(ctx context.Context, c service.Controls) (service.Dispatch, error) {
	m.sequenceCalls++
	m.lastSequence = c.CurrentSequenceText()
	return m.result, m.err
}

func sentDispatch(query string) service.Dispatch {
	return service.Dispatch{ID: uuid.New(), Query: query, Outcome: service.OutcomeSent}
}

// ---- Shared Test Helpers ----

func newTestServices(d service.Dispatcher) (*service.Service, *reflector.Hub) {
	hub := reflector.NewHub(clock.NewMock())
	return &service.Service{Dispatcher: d, Monitoring: hub}, hub
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func jsonRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
