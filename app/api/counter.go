package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rbhz/tg-define/app/clients/counter"
	"github.com/rbhz/tg-define/app/db"
	"github.com/rs/zerolog/log"
)

var counterIncrementsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "tgdefine_counter_increments_total",
		Help: "Total lookup counter increments accepted by the API.",
	},
)

func init() {
	prometheus.MustRegister(counterIncrementsTotal)
}

// counterService implements lookups counter API
type counterService struct {
	storage db.Storage
}

func (c counterService) writeTotal(w http.ResponseWriter, total int64) {
	response, jerr := json.Marshal(counter.Response{TotalLookups: total})
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal counter")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// GetTotal returns current lookups count
func (c counterService) GetTotal(w http.ResponseWriter, r *http.Request) {
	total, err := c.storage.Total()
	if err != nil {
		log.Error().Err(err).Msg("failed to get lookups count")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	c.writeTotal(w, total)
}

// Increment counts a lookup when requested and returns lookups count
func (c counterService) Increment(w http.ResponseWriter, r *http.Request) {
	var req counter.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid JSON")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	var (
		total int64
		err   error
	)
	if req.Increment {
		total, err = c.storage.Increment()
	} else {
		total, err = c.storage.Total()
	}
	if err != nil {
		log.Error().Err(err).Bool("increment", req.Increment).Msg("failed to update lookups count")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if req.Increment {
		counterIncrementsTotal.Inc()
		log.Debug().
			Int64("total", total).
			Interface("subject", r.Context().Value(ctxSubjectKey)).
			Msg("lookup counted")
	}
	c.writeTotal(w, total)
}
