package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_buttons_dispatch_total",
		Help: "Skill invocations by selected handler",
	}, []string{"handler"})

	dispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_buttons_dispatch_errors_total",
		Help: "Skill invocations answered by the error handler, by selected handler",
	}, []string{"handler"})

	directivesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_buttons_directives_total",
		Help: "Directives emitted by type",
	}, []string{"type"})

	gadgetEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_buttons_gadget_events_total",
		Help: "Game engine events processed by name",
	}, []string{"event"})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_buttons_store_errors_total",
		Help: "Session attribute store failures by operation",
	}, []string{"op"})
)

// ObserveDispatch records one dispatch and whether it failed.
func ObserveDispatch(handler string, failed bool) {
	dispatchTotal.WithLabelValues(handler).Inc()
	if failed {
		dispatchErrors.WithLabelValues(handler).Inc()
	}
}

// ObserveDirective records an emitted directive.
func ObserveDirective(directiveType string) {
	directivesTotal.WithLabelValues(directiveType).Inc()
}

// ObserveGadgetEvent records a processed game engine event.
func ObserveGadgetEvent(name string) {
	gadgetEventsTotal.WithLabelValues(name).Inc()
}

// ObserveStoreError records a failed store operation ("get", "save", "delete").
func ObserveStoreError(op string) {
	storeErrors.WithLabelValues(op).Inc()
}
