package bot

import "github.com/prometheus/client_golang/prometheus"

const (
	lookupResultFound    = "found"
	lookupResultNotFound = "not_found"
	lookupResultError    = "error"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgdefine_lookups_total",
			Help: "Total dictionary lookups by result.",
		},
		[]string{"result"},
	)
	staleResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tgdefine_stale_responses_total",
			Help: "Lookup responses dropped because a newer lookup started in the same chat.",
		},
	)
	rendererLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tgdefine_renderer_loads_total",
			Help: "Renderers created for chats.",
		},
	)
)

func init() {
	prometheus.MustRegister(lookupsTotal, staleResponsesTotal, rendererLoadsTotal)
}
