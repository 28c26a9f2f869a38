package geocoding

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name         string
		city         string
		wantCity     string
		wantFallback bool
	}{
		{
			name:     "Cidade conhecida em caixa alta",
			city:     "HOUSTON",
			wantCity: "houston",
		},
		{
			name:     "Cidade conhecida com espaços nas bordas",
			city:     "  San Antonio ",
			wantCity: "san antonio",
		},
		{
			name:         "Cidade desconhecida cai no centróide do Texas",
			city:         "Marfa",
			wantFallback: true,
		},
		{
			name:         "Nome vazio cai no centróide do Texas",
			city:         "",
			wantFallback: true,
		},
		{
			name:         "Correspondência parcial não é aceita",
			city:         "North Houston",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolverWithRand(rand.New(rand.NewSource(42)))

			got := resolver.Resolve(tt.city)

			if tt.wantFallback {
				assert.Equal(t, domain.Coordinates{Latitude: 31.9686, Longitude: -99.9018}, roundCoordinates(got))
				return
			}

			centroid, ok := centroidOf(tt.wantCity)
			require.True(t, ok)
			assert.LessOrEqual(t, math.Abs(got.Latitude-centroid.Lat.Degrees()), MaxJitterDegrees+1e-9)
			assert.LessOrEqual(t, math.Abs(got.Longitude-centroid.Lng.Degrees()), MaxJitterDegrees+1e-9)

			// Diagonal máxima do quadrado de deslocamento
			maxDistance := s2.LatLngFromDegrees(0, 0).Distance(s2.LatLngFromDegrees(MaxJitterDegrees, MaxJitterDegrees))
			assert.LessOrEqual(t, float64(s2.LatLngFromDegrees(got.Latitude, got.Longitude).Distance(centroid)), float64(maxDistance)+1e-12)
		})
	}
}

func TestResolver_ResolveIsStablePerCity(t *testing.T) {
	resolver := NewResolverWithRand(rand.New(rand.NewSource(7)))

	first := resolver.Resolve("Austin")
	second := resolver.Resolve("austin")
	other := resolver.Resolve("Dallas")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestResolver_ResolveConcurrent(t *testing.T) {
	resolver := NewResolver()

	var wg sync.WaitGroup
	results := make([]domain.Coordinates, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = resolver.Resolve("Lubbock")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, results[0], got)
	}
}

func TestCityTableSize(t *testing.T) {
	assert.Len(t, cityCentroids, 15)
}

func roundCoordinates(c domain.Coordinates) domain.Coordinates {
	return domain.Coordinates{
		Latitude:  math.Round(c.Latitude*1e6) / 1e6,
		Longitude: math.Round(c.Longitude*1e6) / 1e6,
	}
}
