package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"plane.watch/opensky/lib/api"
	"plane.watch/opensky/lib/snapshot"
)

const defaultWatchInterval = 30 * time.Second

var (
	prometheusGaugeStateVectors = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "opensky_watch",
		Name:      "current_state_vector_count",
		Help:      "The number of state vectors in the most recent snapshot",
	})
	prometheusCounterFetches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "opensky_watch",
		Name:      "fetch_total",
		Help:      "The total number of polls against the states endpoint",
	})
	prometheusCounterFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "opensky_watch",
		Name:      "fetch_errors_total",
		Help:      "The total number of polls that failed to fetch or decode",
	})
	prometheusCounterSchemaFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "opensky_watch",
		Name:      "schema_fallback_total",
		Help:      "The number of snapshots that only decoded via the fallback schema variant",
	})
	prometheusAppVer = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "opensky_watch",
		Name:      "info",
		Help:      "Application Info/Metadata",
	}, []string{"version"})
)

func runWatch(c *cli.Context) error {
	prometheusAppVer.With(prometheus.Labels{"version": version}).Set(1)

	if port := c.Int("monitor-port"); port > 0 {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); nil != err {
				log.Error().Err(err).Msg("Monitoring web server failed")
			}
		}()
		log.Info().Int("port", port).Msg("Serving metrics")
	}

	var store *snapshot.Store
	if redisURL := c.String("redis"); "" != redisURL {
		var err error
		if store, err = snapshot.NewStore(redisURL); nil != err {
			return err
		}
		defer store.Close()
		log.Info().Msg("Snapshotting to redis")
	}

	request := newAPI(c).GetStates()
	if c.IsSet("bbox") {
		bbox, err := parseBBox(c.String("bbox"))
		if nil != err {
			return err
		}
		request.WithBBox(bbox)
	}

	ticker := time.NewTicker(c.Duration("interval"))
	defer ticker.Stop()
	for {
		poll(request, store)
		<-ticker.C
	}
}

func poll(request *api.StateRequestBuilder, store *snapshot.Store) {
	prometheusCounterFetches.Inc()

	result, err := request.Send()
	if nil != err {
		prometheusCounterFetchErrors.Inc()
		log.Error().Err(err).Msg("Failed to fetch state vectors")
		return
	}

	prometheusGaugeStateVectors.Set(float64(len(result.States)))
	if result.Fallback {
		prometheusCounterSchemaFallbacks.Inc()
	}
	logAnomalies(result)
	log.Info().
		Int("count", len(result.States)).
		Uint64("time", result.Time).
		Msg("Snapshot")

	if nil == store {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.SaveStates(ctx, result); nil != err {
		log.Error().Err(err).Msg("Failed to store snapshot")
	}
}
