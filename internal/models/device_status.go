package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Display defaults used when the device omits a field or cannot be reached.
const (
	DefaultConnectionLabel = "Connected"
	DisconnectedLabel      = "Disconnected"
	PlaceholderAngle       = "--"
	PlaceholderMode        = "--"
)

// DeviceStatus is one decoded answer of the device status resource.
type DeviceStatus struct {
	Connection string `json:"wifiStatus"`
	Angle      string `json:"angle"` // display text, the device sends a number or a string
	Mode       string `json:"mode"`
}

// ErrStatusNotObject is returned for a status body that is valid JSON but not an object.
var ErrStatusNotObject = errors.New("status body is not a JSON object")

// wireStatus mirrors the JSON body; every field is optional.
type wireStatus struct {
	WifiStatus *string     `json:"wifiStatus"`
	Angle      *angleValue `json:"angle"`
	Mode       *string     `json:"mode"`
}

type angleValue string

func (a *angleValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = angleValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = angleValue(n.String())
	return nil
}

// DecodeDeviceStatus parses a status body, filling absent fields with defaults.
// An empty wifiStatus falls back to the default label; empty angle and mode are shown as sent.
func DecodeDeviceStatus(body []byte) (DeviceStatus, error) {
	if trimmed := bytes.TrimSpace(body); json.Valid(trimmed) && trimmed[0] != '{' {
		return DeviceStatus{}, ErrStatusNotObject
	}

	var w wireStatus
	if err := json.Unmarshal(body, &w); err != nil {
		return DeviceStatus{}, err
	}

	st := DeviceStatus{
		Connection: DefaultConnectionLabel,
		Angle:      PlaceholderAngle,
		Mode:       PlaceholderMode,
	}
	if w.WifiStatus != nil && *w.WifiStatus != "" {
		st.Connection = *w.WifiStatus
	}
	if w.Angle != nil {
		st.Angle = string(*w.Angle)
	}
	if w.Mode != nil {
		st.Mode = *w.Mode
	}
	return st, nil
}

// AngleDegrees returns the angle text as an integer when it is a whole number.
func AngleDegrees(text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return v, true
}

// ConnectionState is derived from the outcome of the latest completed poll.
type ConnectionState string

const (
	Connected    ConnectionState = "connected"
	Disconnected ConnectionState = "disconnected"
)

// Class returns the style class for the connection slot. The two classes never co-exist.
func (c ConnectionState) Class() string {
	if c == Connected {
		return "status-ok"
	}
	return "status-error"
}
