// Package cyclic encodes hour-of-day as a point on the unit circle so that
// 23:00 and 00:00 are as close together as 11:00 and 12:00.
package cyclic

import (
	"math"

	"github.com/ahrav/go-threatscore/internal/domain"
)

// HoursPerDay is the period of the encoding.
const HoursPerDay = 24

// Point is an hour mapped onto the unit circle.
type Point struct {
	Sin float64 `json:"sin"`
	Cos float64 `json:"cos"`
}

// Encode maps hour, which must be in [0, 23], to
// (sin(2π·hour/24), cos(2π·hour/24)).
func Encode(hour int) (Point, error) {
	if hour < 0 || hour >= HoursPerDay {
		return Point{}, domain.NewArgumentError("hour", hour, "must be in the range [0, 23]")
	}
	angle := 2 * math.Pi * float64(hour) / HoursPerDay
	return Point{Sin: math.Sin(angle), Cos: math.Cos(angle)}, nil
}

// HourToCyclic is Encode with the components returned separately.
func HourToCyclic(hour int) (sin, cos float64, err error) {
	p, err := Encode(hour)
	if err != nil {
		return 0, 0, err
	}
	return p.Sin, p.Cos, nil
}

// Distance returns the Euclidean distance between two encoded hours.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.Sin-q.Sin, p.Cos-q.Cos)
}
