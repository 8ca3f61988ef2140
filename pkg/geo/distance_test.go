package geo

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{17.4375, 78.4483, 17.4435, 78.3772}, // Ameerpet -> Hitech City
		{51.5074, -0.1278, 48.8566, 2.3522},  // London -> Paris
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, pair := range pairs {
		forward := Distance(pair[0], pair[1], pair[2], pair[3])
		backward := Distance(pair[2], pair[3], pair[0], pair[1])

		if forward != backward {
			t.Errorf("Distance not symmetric: %f vs %f", forward, backward)
		}
	}
}

func TestDistanceIdentity(t *testing.T) {
	if d := Distance(17.4375, 78.4483, 17.4375, 78.4483); d != 0 {
		t.Errorf("Expected 0 distance for identical points, got %f", d)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// London -> Paris is roughly 343.5 km along the great circle.
	d := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	if math.Abs(d-343500) > 1500 {
		t.Errorf("London-Paris distance out of expected range: %f", d)
	}

	// One degree of latitude is ~111.2 km.
	d = Distance(0, 0, 1, 0)
	if math.Abs(d-111195) > 200 {
		t.Errorf("One degree latitude distance out of expected range: %f", d)
	}
}

func TestDistanceWholeMetres(t *testing.T) {
	d := Distance(17.4375, 78.4483, 17.4435, 78.3772)
	if d != math.Trunc(d) {
		t.Errorf("Expected distance rounded to whole metres, got %f", d)
	}
}
