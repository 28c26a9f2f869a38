package geocoding

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/golang/geo/s2"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

// MaxJitterDegrees é o deslocamento máximo aplicado em cada eixo sobre o centróide da cidade
const MaxJitterDegrees = 0.015

// texasCentroid é o ponto devolvido quando a cidade não consta na tabela
var texasCentroid = s2.LatLngFromDegrees(31.9686, -99.9018)

// cityCentroids cobre as maiores cidades do Texas. A busca é exata após trim + lowercase.
var cityCentroids = map[string]s2.LatLng{
	"houston":        s2.LatLngFromDegrees(29.7604, -95.3698),
	"san antonio":    s2.LatLngFromDegrees(29.4241, -98.4936),
	"dallas":         s2.LatLngFromDegrees(32.7767, -96.7970),
	"austin":         s2.LatLngFromDegrees(30.2672, -97.7431),
	"fort worth":     s2.LatLngFromDegrees(32.7555, -97.3308),
	"el paso":        s2.LatLngFromDegrees(31.7619, -106.4850),
	"arlington":      s2.LatLngFromDegrees(32.7357, -97.1081),
	"corpus christi": s2.LatLngFromDegrees(27.8006, -97.3964),
	"plano":          s2.LatLngFromDegrees(33.0198, -96.6989),
	"laredo":         s2.LatLngFromDegrees(27.5306, -99.4803),
	"lubbock":        s2.LatLngFromDegrees(33.5779, -101.8552),
	"irving":         s2.LatLngFromDegrees(32.8140, -96.9489),
	"garland":        s2.LatLngFromDegrees(32.9126, -96.6389),
	"frisco":         s2.LatLngFromDegrees(33.1507, -96.8236),
	"mckinney":       s2.LatLngFromDegrees(33.1972, -96.6398),
}

// Resolver converte nomes de cidade em coordenadas aproximadas. Não é geocodificação real:
// todos os estabelecimentos de uma cidade caem no mesmo ponto deslocado.
type Resolver struct {
	mu     sync.Mutex
	rand   *rand.Rand
	cached map[string]s2.LatLng
}

func NewResolver() *Resolver {
	return NewResolverWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewResolverWithRand permite injetar a fonte de aleatoriedade (testes)
func NewResolverWithRand(r *rand.Rand) *Resolver {
	return &Resolver{
		rand:   r,
		cached: make(map[string]s2.LatLng),
	}
}

// Resolve retorna o centróide deslocado da cidade, estável durante a vida do processo,
// ou o centróide do Texas quando a cidade é desconhecida
func (r *Resolver) Resolve(city string) domain.Coordinates {
	return toCoordinates(r.resolveLatLng(city))
}

func (r *Resolver) resolveLatLng(city string) s2.LatLng {
	key := cityKey(city)

	centroid, ok := centroidOf(city)
	if !ok {
		return texasCentroid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ll, ok := r.cached[key]; ok {
		return ll
	}

	ll := s2.LatLngFromDegrees(
		centroid.Lat.Degrees()+r.jitter(),
		centroid.Lng.Degrees()+r.jitter(),
	)
	r.cached[key] = ll

	return ll
}

// centroidOf retorna o centróide sem deslocamento de uma cidade conhecida
func centroidOf(city string) (s2.LatLng, bool) {
	ll, ok := cityCentroids[cityKey(city)]
	return ll, ok
}

// jitter sorteia um valor em [-MaxJitterDegrees, +MaxJitterDegrees]
func (r *Resolver) jitter() float64 {
	return (r.rand.Float64()*2 - 1) * MaxJitterDegrees
}

func toCoordinates(ll s2.LatLng) domain.Coordinates {
	return domain.Coordinates{
		Latitude:  ll.Lat.Degrees(),
		Longitude: ll.Lng.Degrees(),
	}
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
