package stats

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

const key = "dashboard_stats"

// Cache holds the dashboard counts briefly. It is shared by every service
// whose mutations move a count, and each of them invalidates it so the
// landing page never lags a write.
type Cache struct {
	c *cache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{c: cache.New(ttl, 2*ttl)}
}

func (s *Cache) Get() (*model.DashboardStats, bool) {
	if v, ok := s.c.Get(key); ok {
		return v.(*model.DashboardStats), true
	}
	return nil, false
}

func (s *Cache) Set(stats *model.DashboardStats) {
	s.c.Set(key, stats, cache.DefaultExpiration)
}

func (s *Cache) Invalidate() {
	s.c.Delete(key)
}
