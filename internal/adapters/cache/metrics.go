package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_requests_total",
		Help: "Cache lookups by backend and outcome (hit, miss, error)",
	}, []string{"backend", "result"})
	cacheFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_flushes_total",
		Help: "The total number of cache flushes",
	}, []string{"backend"})
	cacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_evictions_total",
		Help: "Expired entries removed by the sweeper",
	}, []string{"backend"})
)
