package cache

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

const (
	DefaultTTL        = time.Hour
	defaultMaxEntries = 256

	// AllKey identifica a consulta sem filtro de datas
	AllKey = "all"
)

// Entry é um snapshot do resultado de uma consulta agregada
type Entry struct {
	Data     []domain.LocationSummary
	StoredAt time.Time
}

// QueryCache guarda resultados de consultas agregadas por assinatura de filtro. Entradas
// vencidas são ignoradas na leitura e só saem do LRU por substituição, pressão ou Clear.
//
// Cada Clear avança a geração. Um Set com geração anterior é descartado: o resultado foi
// calculado antes da limpeza e pode não conter as linhas recém importadas.
type QueryCache struct {
	mu         sync.Mutex
	generation uint64
	entries    *lru.Cache[string, Entry]
	ttl        time.Duration
	now        func() time.Time
}

func NewQueryCache(ttl time.Duration, maxEntries int) (*QueryCache, error) {
	return NewQueryCacheWithClock(ttl, maxEntries, time.Now)
}

// NewQueryCacheWithClock permite injetar o relógio (testes de expiração)
func NewQueryCacheWithClock(ttl time.Duration, maxEntries int, now func() time.Time) (*QueryCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	entries, err := lru.New[string, Entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("cache: erro ao criar LRU: %w", err)
	}

	return &QueryCache{
		entries: entries,
		ttl:     ttl,
		now:     now,
	}, nil
}

// Get retorna o snapshot se ele tiver menos que TTL de idade. Em caso de miss, a geração
// devolvida deve ser repassada ao Set do resultado calculado.
func (c *QueryCache) Get(key string) ([]domain.LocationSummary, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, c.generation, false
	}

	if c.now().Sub(entry.StoredAt) >= c.ttl {
		return nil, c.generation, false
	}

	return entry.Data, c.generation, true
}

// Set grava o snapshot, a menos que o cache tenha sido limpo depois da geração informada.
// Retorna false quando a escrita foi descartada.
func (c *QueryCache) Set(key string, generation uint64, data []domain.LocationSummary) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return false
	}

	c.entries.Add(key, Entry{
		Data:     data,
		StoredAt: c.now(),
	})
	return true
}

// Clear descarta todas as entradas e avança a geração
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries.Purge()
}

func (c *QueryCache) size() int {
	return c.entries.Len()
}

// Key monta a assinatura canônica do filtro: "all" sem filtro, senão "<início>_<fim>"
// com datas yyyy-mm-dd e lado ausente vazio
func Key(filter *domain.DateFilter) string {
	if filter.IsEmpty() {
		return AllKey
	}

	var start, end string
	if filter.StartDate != nil {
		start = filter.StartDate.Format(time.DateOnly)
	}
	if filter.EndDate != nil {
		end = filter.EndDate.Format(time.DateOnly)
	}

	return start + "_" + end
}
