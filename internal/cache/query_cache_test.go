package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

type fakeClock struct {
	current time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.current
}

func (f *fakeClock) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestCache(t *testing.T, maxEntries int) (*QueryCache, *fakeClock) {
	t.Helper()

	clock := &fakeClock{current: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c, err := NewQueryCacheWithClock(time.Hour, maxEntries, clock.Now)
	require.NoError(t, err)

	return c, clock
}

func TestQueryCache_TTL(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{
			name:    "Entrada recém gravada é retornada",
			elapsed: 0,
			wantHit: true,
		},
		{
			name:    "Entrada com 59 minutos ainda é válida",
			elapsed: 59 * time.Minute,
			wantHit: true,
		},
		{
			name:    "Entrada com exatamente uma hora está vencida",
			elapsed: time.Hour,
			wantHit: false,
		},
		{
			name:    "Entrada com 61 minutos está vencida",
			elapsed: 61 * time.Minute,
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(t, 10)
			data := []domain.LocationSummary{{PermitNumber: "MB123"}}

			c.Set(AllKey, 0, data)
			clock.Advance(tt.elapsed)

			got, _, ok := c.Get(AllKey)
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, data, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestQueryCache_ExpiredEntryIsNotEvicted(t *testing.T) {
	c, clock := newTestCache(t, 10)

	c.Set(AllKey, 0, []domain.LocationSummary{{PermitNumber: "MB123"}})
	clock.Advance(2 * time.Hour)

	_, _, ok := c.Get(AllKey)
	assert.False(t, ok)
	assert.Equal(t, 1, c.size())
}

func TestQueryCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, 10)

	c.Set(AllKey, 0, []domain.LocationSummary{{PermitNumber: "MB1"}})
	c.Set("2024-01-01_2024-01-31", 0, []domain.LocationSummary{{PermitNumber: "MB2"}})

	c.Clear()

	_, _, ok := c.Get(AllKey)
	assert.False(t, ok)
	_, _, ok = c.Get("2024-01-01_2024-01-31")
	assert.False(t, ok)
	assert.Equal(t, 0, c.size())
}

func TestQueryCache_SetAfterClearIsDiscarded(t *testing.T) {
	c, _ := newTestCache(t, 10)

	_, generation, ok := c.Get(AllKey)
	require.False(t, ok)

	// Importação concluída enquanto a consulta ainda estava em andamento
	c.Clear()

	stored := c.Set(AllKey, generation, []domain.LocationSummary{{PermitNumber: "MB-ANTIGO"}})
	assert.False(t, stored)

	_, _, ok = c.Get(AllKey)
	assert.False(t, ok)
	assert.Equal(t, 0, c.size())

	_, current, _ := c.Get(AllKey)
	assert.Equal(t, generation+1, current)
	assert.True(t, c.Set(AllKey, current, []domain.LocationSummary{{PermitNumber: "MB-NOVO"}}))

	got, _, ok := c.Get(AllKey)
	require.True(t, ok)
	assert.Equal(t, "MB-NOVO", got[0].PermitNumber)
}

func TestQueryCache_BoundedEntries(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("a", 0, []domain.LocationSummary{})
	c.Set("b", 0, []domain.LocationSummary{})
	c.Set("c", 0, []domain.LocationSummary{})

	assert.Equal(t, 2, c.size())
	_, _, ok := c.Get("a")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter *domain.DateFilter
		want   string
	}{
		{name: "Filtro nil", filter: nil, want: "all"},
		{name: "Filtro vazio", filter: &domain.DateFilter{}, want: "all"},
		{name: "Ambas as datas", filter: &domain.DateFilter{StartDate: &start, EndDate: &end}, want: "2024-01-01_2024-03-31"},
		{name: "Somente início", filter: &domain.DateFilter{StartDate: &start}, want: "2024-01-01_"},
		{name: "Somente fim", filter: &domain.DateFilter{EndDate: &end}, want: "_2024-03-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.filter))
		})
	}
}
