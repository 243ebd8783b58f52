package kernel_test

import (
	"math"
	"testing"

	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("creates_location_with_valid_coordinates", func(t *testing.T) {
		// When
		loc, err := kernel.NewLocation(-5.7480, -35.2560)

		// Then
		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, -5.7480, loc.Latitude(), 1e-9)
		assert.InDelta(t, -35.2560, loc.Longitude(), 1e-9)
	})

	t.Run("accepts_boundary_coordinates", func(t *testing.T) {
		for _, tc := range []struct{ lat, lng float64 }{
			{kernel.LatitudeMin, 0},
			{kernel.LatitudeMax, 0},
			{0, kernel.LongitudeMin},
			{0, kernel.LongitudeMax},
		} {
			_, err := kernel.NewLocation(tc.lat, tc.lng)
			require.NoError(t, err)
		}
	})

	t.Run("rejects_latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewLocation(90.0001, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")

		_, err = kernel.NewLocation(-90.0001, 0)
		require.Error(t, err)
	})

	t.Run("rejects_longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewLocation(0, 180.0001)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")

		_, err = kernel.NewLocation(0, -180.0001)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var loc kernel.Location
		require.Error(t, loc.Validate())
	})
}

func TestLocation_DistanceTo(t *testing.T) {
	t.Run("distance_to_itself_is_zero", func(t *testing.T) {
		// Given
		loc, err := kernel.NewLocation(-5.7480, -35.2560)
		require.NoError(t, err)

		// When
		d, err := loc.DistanceTo(loc)

		// Then
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		// Given
		a, _ := kernel.NewLocation(-5.7480, -35.2560)
		b, _ := kernel.NewLocation(-5.8100, -35.2000)

		// When
		dab, err := a.DistanceTo(b)
		require.NoError(t, err)
		dba, err := b.DistanceTo(a)
		require.NoError(t, err)

		// Then
		assert.InDelta(t, dab, dba, 1e-6)
	})

	t.Run("one_degree_of_latitude_is_about_111km", func(t *testing.T) {
		// Given
		a, _ := kernel.NewLocation(0, 0)
		b, _ := kernel.NewLocation(1, 0)

		// When
		d, err := a.DistanceTo(b)

		// Then
		require.NoError(t, err)
		// 2*pi*R/360 with R = 6371 km
		expected := 2 * math.Pi * kernel.EarthRadiusMeters / 360
		assert.InDelta(t, expected, d, 1.0)
	})

	t.Run("triangle_inequality_holds", func(t *testing.T) {
		// Given
		a, _ := kernel.NewLocation(-5.70, -35.20)
		b, _ := kernel.NewLocation(-5.75, -35.25)
		c, _ := kernel.NewLocation(-5.80, -35.30)

		// When
		dab, _ := a.DistanceTo(b)
		dbc, _ := b.DistanceTo(c)
		dac, _ := a.DistanceTo(c)

		// Then
		assert.LessOrEqual(t, dac, dab+dbc+1e-6)
	})

	t.Run("fails_for_unconstructed_location", func(t *testing.T) {
		// Given
		valid, _ := kernel.NewLocation(0, 0)
		var invalid kernel.Location

		// When
		_, err := valid.DistanceTo(invalid)

		// Then
		require.Error(t, err)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	t.Run("equal_coordinates_are_equal", func(t *testing.T) {
		a, _ := kernel.NewLocation(-5.7480, -35.2560)
		b, _ := kernel.NewLocation(-5.7480, -35.2560)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_coordinates_are_not_equal", func(t *testing.T) {
		a, _ := kernel.NewLocation(-5.7480, -35.2560)
		b, _ := kernel.NewLocation(-5.7481, -35.2560)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})
}

func TestLocation_String(t *testing.T) {
	loc, _ := kernel.NewLocation(-5.7480, -35.2560)
	assert.Equal(t, "Location(-5.748000,-35.256000)", loc.String())
}
