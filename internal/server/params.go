// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// parseInt reads a numeric form or JSON field. Empty means "not given"
// (0); anything that is not a whole number becomes -1, which no target
// supports.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return -1
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return -1
	}

	return int(f)
}

// flexInt accepts a JSON number, a numeric string or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*f = 0
	case float64:
		*f = flexInt(parseInt(strconv.FormatFloat(t, 'f', -1, 64)))
	case string:
		*f = flexInt(parseInt(t))
	default:
		*f = -1
	}

	return nil
}
