package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMalformedAttribute is returned when an XML3D attribute string cannot be parsed.
var ErrMalformedAttribute = errors.New("malformed attribute")

// ParseVec3 parses an XML3D vector attribute of the form "x y z".
// Components may be separated by whitespace or commas.
//
// Parameters:
//   - s: the attribute value
//
// Returns:
//   - mgl64.Vec3: the parsed vector
//   - error: wraps ErrMalformedAttribute if s does not hold exactly three finite numbers
func ParseVec3(s string) (mgl64.Vec3, error) {
	vals, err := parseFloats(s, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{vals[0], vals[1], vals[2]}, nil
}

// FormatVec3 formats v as an XML3D vector attribute ("x y z").
func FormatVec3(v mgl64.Vec3) string {
	return formatFloats(v[0], v[1], v[2])
}

// ParseAxisAngle parses an XML3D rotation attribute of the form "ax ay az angle".
// The axis is normalized; a zero axis yields the identity rotation.
//
// Parameters:
//   - s: the attribute value
//
// Returns:
//   - mgl64.Quat: the unit rotation
//   - error: wraps ErrMalformedAttribute if s does not hold exactly four finite numbers
func ParseAxisAngle(s string) (mgl64.Quat, error) {
	vals, err := parseFloats(s, 4)
	if err != nil {
		return mgl64.QuatIdent(), err
	}
	return AxisAngle(mgl64.Vec3{vals[0], vals[1], vals[2]}, vals[3]), nil
}

// FormatAxisAngle formats q as an XML3D rotation attribute ("ax ay az angle").
func FormatAxisAngle(q mgl64.Quat) string {
	axis, angle := ToAxisAngle(q)
	return formatFloats(axis[0], axis[1], axis[2], angle)
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != n {
		return nil, fmt.Errorf("%w: %q: expected %d components, got %d", ErrMalformedAttribute, s, n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedAttribute, s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q: non-finite component %d", ErrMalformedAttribute, s, i+1)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloats(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
