package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidParams marks a tool call rejected before any operation ran:
// a required parameter is missing or a value fails a range check.
var ErrInvalidParams = errors.New("invalid tool parameters")

// paramsError carries the caller-facing message of an invalid-parameters failure.
type paramsError string

func (e paramsError) Error() string { return string(e) }

func (e paramsError) Is(target error) bool { return target == ErrInvalidParams }

func invalidParams(format string, args ...any) error {
	return paramsError(fmt.Sprintf(format, args...))
}

// FlexNumber is a numeric parameter that clients send either as a JSON
// number or as a numeric string such as "1000.50".
type FlexNumber struct {
	raw string
}

// NewFlexNumber wraps a literal value, e.g. "12.5".
func NewFlexNumber(raw string) FlexNumber {
	return FlexNumber{raw: raw}
}

// UnmarshalJSON keeps the literal text; parsing is left to Float and Int so
// a malformed value surfaces as an invalid parameter.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		n.raw = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	n.raw = string(b)
	return nil
}

// MarshalJSON renders the literal as a JSON string, or null when unset.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a non-empty value was given.
func (n FlexNumber) IsSet() bool { return n.raw != "" }

// maxNumber bounds numeric parameters so budgets survive the minor-unit
// conversion and limits fit an int.
const maxNumber = 1e12

// Float parses the value. An unset value yields 0 without error; NaN,
// infinities and values beyond maxNumber are invalid.
func (n FlexNumber) Float(name string) (float64, error) {
	if n.raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidParams("Parametr %s musí být číslo, obdrženo %q.", name, n.raw)
	}
	if math.Abs(f) > maxNumber {
		return 0, invalidParams("Parametr %s je mimo povolený rozsah, obdrženo %q.", name, n.raw)
	}
	return f, nil
}

// Int parses the value as an integer, truncating any fraction.
func (n FlexNumber) Int(name string) (int, error) {
	f, err := n.Float(name)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// splitMetrics parses a comma-separated metric list, dropping blanks.
// An empty result means "use the defaults".
func splitMetrics(s string) []string {
	var out []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// requireParams fails with a message naming every empty parameter.
// Pairs are name, value.
func requireParams(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return invalidParams("Chybí povinný parametr %s.", missing[0])
	default:
		return invalidParams("Chybí povinné parametry: %s.", strings.Join(missing, ", "))
	}
}

// stringVariables converts template variables to strings. Non-string values
// are formatted; null becomes empty and so counts as missing.
func stringVariables(vars map[string]any) map[string]string {
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
