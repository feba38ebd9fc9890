package servicecenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func center(t *testing.T, id uint, name string, lat, lng *float64) *ServiceCenter {
	t.Helper()
	sc, err := NewServiceCenter(Params{Name: name, Code: name, Latitude: lat, Longitude: lng}, time.Now())
	require.NoError(t, err)
	sc.SetID(id)
	return sc
}

func f(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	// Praça da Sé to Avenida Paulista (MASP), roughly 2.5 km.
	d := DistanceKm(-23.5503, -46.6340, -23.5614, -46.6559)
	assert.InDelta(t, 2.5, d, 0.6)

	assert.InDelta(t, 0, DistanceKm(-23.55, -46.63, -23.55, -46.63), 1e-9)
}

func TestFilterNearby(t *testing.T) {
	centers := []*ServiceCenter{
		center(t, 1, "paulista", f(-23.5614), f(-46.6559)),
		center(t, 2, "no-coords", nil, nil),
		center(t, 3, "se", f(-23.5503), f(-46.6340)),
		center(t, 4, "campinas", f(-22.9099), f(-47.0626)),
	}

	got := FilterNearby(centers, -23.5505, -46.6333, 10, 0)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].Center.ID())
	assert.Equal(t, uint(1), got[1].Center.ID())
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)

	limited := FilterNearby(centers, -23.5505, -46.6333, 200, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, uint(3), limited[0].Center.ID())
}

func TestSearchBounds(t *testing.T) {
	b := SearchBounds(-23.55, -46.63, 10)
	assert.Less(t, b.MinLat, -23.55)
	assert.Greater(t, b.MaxLat, -23.55)
	assert.Less(t, b.MinLng, -46.63)
	assert.Greater(t, b.MaxLng, -46.63)
	// 10 km is about 0.09 degrees of latitude
	assert.InDelta(t, 0.18, b.MaxLat-b.MinLat, 0.02)
}

func TestNewServiceCenter_Coordinates(t *testing.T) {
	_, err := NewServiceCenter(Params{Name: "x", Code: "x", Latitude: f(10)}, time.Now())
	assert.Error(t, err)

	_, err = NewServiceCenter(Params{Name: "x", Code: "x", Latitude: f(95), Longitude: f(0)}, time.Now())
	assert.Error(t, err)
}
