package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tnmoxa/epg-task/internal/geo"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, geo.Haversine(51.5, -0.12, 51.5, -0.12))
	assert.Equal(t, 0.0, geo.Haversine(0, 0, 0, 0))
}

func TestHaversineSymmetric(t *testing.T) {
	d1 := geo.Haversine(55.7558, 37.6173, 59.9343, 30.3351)
	d2 := geo.Haversine(59.9343, 30.3351, 55.7558, 37.6173)
	assert.Equal(t, d1, d2)
}

func TestHaversineKnownDistances(t *testing.T) {
	// a ~1.57 km hop near the equator
	near := geo.Haversine(0.0, 0.0, 0.01, 0.01)
	assert.InDelta(t, 1.57, near, 0.01)

	// ten degrees out in both axes
	far := geo.Haversine(0.0, 0.0, 10.0, 10.0)
	assert.InDelta(t, 1569, far, 5)
}
