package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one normalized result row from the gateway: column name to
// raw cell value. Cell types depend on the upstream driver, so access
// goes through the typed accessors below.
type Row map[string]any

// Has reports whether the column exists and carries a non-nil value.
func (r Row) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the cell as a string, or "" for nil/missing cells.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Decimal returns the cell as a decimal, or zero for nil/missing or
// unparseable cells.
func (r Row) Decimal(key string) decimal.Decimal {
	v, ok := r[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int64:
		return decimal.NewFromInt(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Time returns the cell as a time, trying the common upstream date
// encodings. The zero time is returned for nil/missing cells.
func (r Row) Time(key string) time.Time {
	if ts, ok := r[key].(time.Time); ok {
		return ts
	}
	s := r.String(key)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Bool returns the cell as a bool. Numeric cells follow the usual
// zero/non-zero convention.
func (r Row) Bool(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		n, _ := t.Int64()
		return n != 0
	case string:
		b, err := strconv.ParseBool(t)
		return err == nil && b
	default:
		return false
	}
}
