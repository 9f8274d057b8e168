// Package metrics holds the Prometheus collectors of the panel core. They are
// registered on the default registry and served by the status API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scorepanel"

var (
	linkState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "link",
			Name:      "state",
			Help:      "1 for the current link state, 0 otherwise",
		},
		[]string{"state"},
	)

	linkEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link",
			Name:      "events_total",
			Help:      "Link events by kind (connect, connect_failed, disconnect, heartbeat, heartbeat_timeout, message, send_error)",
		},
		[]string{"event"},
	)

	processEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "player",
			Name:      "events_total",
			Help:      "Player process launches and exits by slot and outcome",
		},
		[]string{"slot", "event"},
	)

	slideTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slideshow",
			Name:      "transitions_total",
			Help:      "Completed slide transitions by mode",
		},
		[]string{"mode"},
	)

	displayMode = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "display",
			Name:      "mode",
			Help:      "1 for the mode currently owning the display, 0 otherwise",
		},
		[]string{"mode"},
	)

	tokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "protocol",
			Name:      "tokens_total",
			Help:      "Recognised inbound tokens by name and outcome",
		},
		[]string{"token", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(linkState, linkEvents, processEvents, slideTransitions, displayMode, tokensTotal)
}

// SetLinkState marks state as current among all.
func SetLinkState(state string, all []string) {
	for _, s := range all {
		linkState.WithLabelValues(s).Set(0)
	}
	linkState.WithLabelValues(state).Set(1)
}

func LinkEvent(event string) { linkEvents.WithLabelValues(event).Inc() }

func ProcessEvent(slot, event string) { processEvents.WithLabelValues(slot, event).Inc() }

func SlideTransition(mode string) { slideTransitions.WithLabelValues(mode).Inc() }

// SetDisplayMode marks mode as current among all.
func SetDisplayMode(mode string, all []string) {
	for _, m := range all {
		displayMode.WithLabelValues(m).Set(0)
	}
	displayMode.WithLabelValues(mode).Set(1)
}

// Token counts a handled token. outcome is one of "applied", "dropped",
// "failed" or "invalid".
func Token(name, outcome string) {
	if outcome == "" {
		outcome = "applied"
	}
	tokensTotal.WithLabelValues(name, outcome).Inc()
}
