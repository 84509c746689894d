package repository

import (
	"net/url"
	"strconv"
	"strings"

	"servo_control/internal/models"
)

// Param is one ordered query-string pair.
type Param struct {
	Key   string
	Value string
}

// Encode turns a command into its ordered control parameters.
func Encode(cmd models.Command) []Param {
	switch c := cmd.(type) {
	case models.Manual:
		return []Param{{"mode", "manual"}, {"angle", strconv.Itoa(c.Angle)}}
	case models.NamedMode:
		return []Param{{"mode", c.Mode}}
	case models.Sequence:
		return []Param{{"mode", "sequence"}, {"angles", c.Raw}}
	default:
		return nil
	}
}

// EncodeQuery form-encodes Encode(cmd) keeping parameter order.
// url.Values is not used because Encode sorts by key.
func EncodeQuery(cmd models.Command) string {
	params := Encode(cmd)
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
