// Package metrics holds the Prometheus collectors of the application.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tictactoe"

const (
	ResultDraw = "draw"
)

type Metrics struct {
	registry *prometheus.Registry

	moves          prometheus.Counter
	gamesFinished  *prometheus.CounterVec
	productQueries prometheus.Counter
	httpRequests   *prometheus.CounterVec
}

// New - creates the collectors in their own registry, so tests can build as many as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		moves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Accepted moves.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached a win or a draw, by result.",
		}, []string{"result"}),
		productQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_queries_total",
			Help:      "Product table recomputations.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
	}

	m.registry.MustRegister(m.moves, m.gamesFinished, m.productQueries, m.httpRequests)

	return m
}

func (that *Metrics) MoveAccepted() {
	that.moves.Inc()
}

// GameFinished - result is the winning mark or ResultDraw.
func (that *Metrics) GameFinished(result string) {
	that.gamesFinished.WithLabelValues(result).Inc()
}

func (that *Metrics) ProductQuery() {
	that.productQueries.Inc()
}

func (that *Metrics) HTTPRequest(path string, code int) {
	that.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

func (that *Metrics) Registry() *prometheus.Registry {
	return that.registry
}

func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}
