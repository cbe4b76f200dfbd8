package features

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb/geo"

	"github.com/yourorg/location-quote/internal/location"
)

// ElevationSource returns elevations in metres, one per input point.
type ElevationSource interface {
	Elevations(ctx context.Context, pts []location.Coordinates) ([]float64, error)
}

// ElevationTerrainEstimator samples a ring of points around the location and
// turns the steepest grade from the centre into a 1..10 difficulty: every
// GradeStep percent of grade adds one point.
type ElevationTerrainEstimator struct {
	Source       ElevationSource
	RadiusMeters float64 // default 40
	Samples      int     // ring size, default 8
	GradeStep    float64 // default 4 (%)
}

func (e ElevationTerrainEstimator) EstimateTerrainDifficulty(ctx context.Context, c location.Coordinates) (int, error) {
	if e.Source == nil {
		return 0, ErrNoSignal
	}
	radius, n, step := e.RadiusMeters, e.Samples, e.GradeStep
	if radius <= 0 {
		radius = 40
	}
	if n <= 0 {
		n = 8
	}
	if step <= 0 {
		step = 4
	}

	pts := make([]location.Coordinates, 0, n+1)
	pts = append(pts, c)
	center := c.Point()
	for i := 0; i < n; i++ {
		bearing := float64(i) * 360 / float64(n)
		pts = append(pts, location.FromPoint(geo.PointAtBearingAndDistance(center, bearing, radius)))
	}

	elev, err := e.Source.Elevations(ctx, pts)
	if err != nil {
		return 0, err
	}
	if len(elev) != len(pts) {
		return 0, fmt.Errorf("elevation source returned %d samples for %d points", len(elev), len(pts))
	}
	maxGrade := 0.0
	for _, h := range elev[1:] {
		if g := math.Abs(h-elev[0]) / radius * 100; g > maxGrade {
			maxGrade = g
		}
	}
	return clampScore(1 + int(maxGrade/step)), nil
}
