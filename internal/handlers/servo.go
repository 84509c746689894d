package handlers

import (
	"errors"
	"net/http"

	"servo_control/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusAccepted = "accepted"
	statusIgnored  = "ignored"

	errSendCommand     = "failed to dispatch command"
	errInvalidBodyPref = "invalid body: "
)

// operatorInput adapts a decoded request to the dispatcher's Controls.
type operatorInput struct {
	angle    int
	sequence string
	mode     string
}

func (in operatorInput) CurrentSliderAngle() int     { return in.angle }
func (in operatorInput) CurrentSequenceText() string { return in.sequence }
func (in operatorInput) TriggeredModeID() string     { return in.mode }

// Request DTOs.
type manualRequest struct {
	Angle *int `json:"angle" binding:"required,min=0,max=180"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type sequenceRequest struct {
	Angles string `json:"angles"`
}

// ManualRequest is an exported model for Swagger docs of the manual payload.
type ManualRequest struct {
	// Target angle in degrees, 0..180
	Angle int `json:"angle" example:"90"`
}

// ModeRequest is an exported model for Swagger docs of the mode payload.
type ModeRequest struct {
	// Device mode identifier
	Mode string `json:"mode" example:"sweep"`
}

// SequenceRequest is an exported model for Swagger docs of the sequence payload.
type SequenceRequest struct {
	// Angles separated by commas and/or whitespace
	Angles string `json:"angles" example:"0, 90, 180"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("servo_bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// respondDispatch writes the outcome of a dispatch.
// Send failures answer accepted; only validation errors reach the operator.
func (h *Handler) respondDispatch(c *gin.Context, d service.Dispatch, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSequence):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		if h.log != nil {
			h.log.Errorw("servo_dispatch_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errSendCommand})
	case d.Outcome == service.OutcomeSkipped:
		c.JSON(http.StatusOK, gin.H{"status": statusIgnored})
	default:
		c.JSON(http.StatusAccepted, gin.H{
			"status":     statusAccepted,
			"command_id": d.ID.String(),
			"query":      d.Query,
		})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current display
// @Description  Last reflected device status. Placeholders ("--") while disconnected.
// @Tags         servo
// @Produce      json
// @Success      200  {object}  models.Display
// @Router       /api/v1/servo/state [get]
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Snapshot())
}

// @Summary      Move to angle
// @Tags         servo
// @Accept       json
// @Produce      json
// @Param        body  body   ManualRequest  true  "Manual payload"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/servo/manual [post]
func (h *Handler) sendManual(c *gin.Context) {
	var req manualRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	d, err := h.services.Dispatcher.SendManual(c.Request.Context(), operatorInput{angle: *req.Angle})
	h.respondDispatch(c, d, err)
}

// @Summary      Switch mode
// @Tags         servo
// @Accept       json
// @Produce      json
// @Param        body  body   ModeRequest  true  "Mode payload"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/servo/mode [post]
func (h *Handler) sendMode(c *gin.Context) {
	var req modeRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	d, err := h.services.Dispatcher.SendMode(c.Request.Context(), operatorInput{mode: req.Mode})
	h.respondDispatch(c, d, err)
}

// @Summary      Play angle sequence
// @Description  Only digits, whitespace and commas are accepted. Empty input is ignored.
// @Tags         servo
// @Accept       json
// @Produce      json
// @Param        body  body   SequenceRequest  true  "Sequence payload"
// @Success      200   {object}  map[string]string  "ignored"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/servo/sequence [post]
func (h *Handler) sendSequence(c *gin.Context) {
	var req sequenceRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	d, err := h.services.Dispatcher.SendSequence(c.Request.Context(), operatorInput{sequence: req.Angles})
	h.respondDispatch(c, d, err)
}
