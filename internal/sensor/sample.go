package sensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/slosh/internal/dynamo"
)

// StandardGravity in m/s².
const StandardGravity = 9.81

type Vec3 struct {
	X, Y, Z float64
}

// Sample is one accelerometer reading. Gravity is the gravity-inclusive
// acceleration and is required for the sample to mean anything; Motion is the
// gravity-excluded acceleration and is optional.
type Sample struct {
	Gravity *Vec3
	Motion  *Vec3
	At      time.Duration
}

// ParseSample reads "gx,gy,gz" or "gx,gy,gz,mx,my,mz".
func ParseSample(line string) (Sample, error) {
	vals, err := parseFloats(line)
	if err != nil {
		return Sample{}, err
	}
	return sampleFrom(vals)
}

// ParseRecord reads a timestamped line "t,gx,gy,gz[,mx,my,mz]" with t in
// seconds, as written by [Sample.Record].
func ParseRecord(line string) (Sample, error) {
	vals, err := parseFloats(line)
	if err != nil {
		return Sample{}, err
	}
	if len(vals) < 1 {
		return Sample{}, fmt.Errorf("%w: empty record", dynamo.ErrMalformedSample)
	}
	s, err := sampleFrom(vals[1:])
	if err != nil {
		return Sample{}, err
	}
	if vals[0] < 0 {
		return Sample{}, fmt.Errorf("%w: negative timestamp", dynamo.ErrMalformedSample)
	}
	s.At = time.Duration(vals[0] * float64(time.Second))
	return s, nil
}

func sampleFrom(vals []float64) (Sample, error) {
	switch len(vals) {
	case 3:
		return Sample{Gravity: &Vec3{vals[0], vals[1], vals[2]}}, nil
	case 6:
		return Sample{
			Gravity: &Vec3{vals[0], vals[1], vals[2]},
			Motion:  &Vec3{vals[3], vals[4], vals[5]},
		}, nil
	default:
		return Sample{}, fmt.Errorf("%w: want 3 or 6 fields, got %d", dynamo.ErrMalformedSample, len(vals))
	}
}

func parseFloats(line string) ([]float64, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, fmt.Errorf("%w: blank line", dynamo.ErrMalformedSample)
	}
	fields := strings.Split(line, ",")
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", dynamo.ErrMalformedSample, i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: field %d not finite", dynamo.ErrMalformedSample, i)
		}
		vals[i] = v
	}
	return vals, nil
}

// Line formats the sample the way ParseSample reads it. A sample without
// gravity gives an empty line.
func (s Sample) Line() string {
	if s.Gravity == nil {
		return ""
	}
	line := fmt.Sprintf("%g,%g,%g", s.Gravity.X, s.Gravity.Y, s.Gravity.Z)
	if s.Motion != nil {
		line += fmt.Sprintf(",%g,%g,%g", s.Motion.X, s.Motion.Y, s.Motion.Z)
	}
	return line
}

// Record formats the sample as a replayable line.
func (s Sample) Record() string {
	rec := fmt.Sprintf("%.4f", s.At.Seconds())
	if line := s.Line(); line != "" {
		rec += "," + line
	}
	return rec
}

// Angle is the screen rotation implied by a gravity reading.
func Angle(g Vec3, offset float64) float64 {
	return dynamo.WrapAngle(math.Atan2(g.X, g.Y) + offset)
}

// GravityFor is the inverse of [Angle]: a gravity reading of magnitude
// StandardGravity that yields angle under the given offset.
func GravityFor(angle, offset float64) Vec3 {
	return Vec3{
		X: StandardGravity * math.Sin(angle-offset),
		Y: StandardGravity * math.Cos(angle-offset),
	}
}

// Shake is the planar jolt magnitude of a gravity-excluded reading.
func Shake(m Vec3) float64 {
	return math.Abs(m.X) + math.Abs(m.Y)
}
