package numeric

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFloat parses a single real number typed by a user.
func ParseFloat(name, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q must be a number, got %q", ErrInvalidInput, name, text)
	}
	return v, nil
}

// ParseFloats parses a whitespace or comma separated list of reals.
func ParseFloats(name, text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseFloat(name, f)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// ParseRange parses the a and b fields of a lab and checks a < b.
func ParseRange(aText, bText string) (float64, float64, error) {
	a, err := ParseFloat("a", aText)
	if err != nil {
		return 0, 0, err
	}
	b, err := ParseFloat("b", bText)
	if err != nil {
		return 0, 0, err
	}
	if a >= b {
		return 0, 0, fmt.Errorf("%w: 'a' must be lower than 'b'", ErrDegenerateRange)
	}
	return a, b, nil
}
