package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{name: "same point", lat1: 13.7563, lon1: 100.5018, lat2: 13.7563, lon2: 100.5018, want: 0, tolerance: 0.001},
		// Bangkok city pillar to the Grand Palace, roughly 700 m.
		{name: "short hop", lat1: 13.7525, lon1: 100.4943, lat2: 13.7500, lon2: 100.4913, want: 434, tolerance: 50},
		// One degree of latitude is about 111.19 km on the sphere.
		{name: "one degree latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111195, tolerance: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := HaversineMeters(13.75, 100.50, 13.76, 100.51)
	b := HaversineMeters(13.76, 100.51, 13.75, 100.50)
	assert.InDelta(t, a, b, 1e-9)
}

func TestWithinRadius(t *testing.T) {
	eventLat, eventLon := 13.7563, 100.5018

	// A distance exactly equal to the radius passes.
	d := HaversineMeters(eventLat, eventLon, eventLat+0.0005, eventLon)
	assert.True(t, WithinRadius(eventLat+0.0005, eventLon, eventLat, eventLon, d))
	assert.False(t, WithinRadius(eventLat+0.0005, eventLon, eventLat, eventLon, d-0.5))

	assert.True(t, WithinRadius(eventLat, eventLon, eventLat, eventLon, 0))
	// ~1.1 km away never fits the default 80 m fence.
	assert.False(t, WithinRadius(eventLat+0.01, eventLon, eventLat, eventLon, 80))
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{name: "bangkok", lat: 13.7563, lon: 100.5018, want: true},
		{name: "poles", lat: 90, lon: 180, want: true},
		{name: "antipodes", lat: -90, lon: -180, want: true},
		{name: "lat too high", lat: 90.01, lon: 0, want: false},
		{name: "lon too low", lat: 0, lon: -180.5, want: false},
		{name: "nan lat", lat: math.NaN(), lon: 0, want: false},
		{name: "inf lon", lat: 0, lon: math.Inf(1), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinate(tt.lat, tt.lon))
		})
	}
}
