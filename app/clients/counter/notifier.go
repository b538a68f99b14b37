package counter

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 10 * time.Second

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tgdefine_counter_notifications_total",
		Help: "Lookup counter notifications by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(notificationsTotal)
}

// Incrementer increments lookups counter
type Incrementer interface {
	Increment(ctx context.Context) (Response, error)
}

// Notifier reports lookups without waiting for the result.
// Errors are handed to the sink and never returned.
type Notifier struct {
	counter Incrementer
	sink    func(error)
	timeout time.Duration
}

// Notify spawns increment request in background
func (n *Notifier) Notify() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		resp, err := n.counter.Increment(ctx)
		if err != nil {
			notificationsTotal.WithLabelValues("error").Inc()
			n.sink(err)
			return
		}
		notificationsTotal.WithLabelValues("ok").Inc()
		log.Debug().Int64("total", resp.TotalLookups).Msg("lookup count incremented")
	}()
}

// LogError is the default error sink
func LogError(err error) {
	log.Error().Err(err).Msg("failed to increment lookup count")
}

// NewNotifier creates Notifier, nil sink means LogError
func NewNotifier(counter Incrementer, sink func(error)) *Notifier {
	if sink == nil {
		sink = LogError
	}
	return &Notifier{counter: counter, sink: sink, timeout: notifyTimeout}
}
