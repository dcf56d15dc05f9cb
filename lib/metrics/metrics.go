package metrics

import prom "github.com/prometheus/client_golang/prometheus"

const (
	Namespace = "xssri"

	SubsystemDispatch = "dispatch"
	SubsystemPausable = "pausable"

	LabelMethod = "method"
	LabelCode   = "code"
	LabelOp     = "op"
)

// dispatch
var (
	// method label is the fingerprint in hex, names are not kept at runtime
	DispatchCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemDispatch,
			Name:      "call_total",
			Help:      "Total number of dispatched calls.",
		},
		[]string{LabelMethod, LabelCode})
	DispatchHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemDispatch,
			Name:      "cost_seconds",
			Help:      "Histogram of dispatched call latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelMethod})
)

// pausable
var (
	ChainDepthHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemPausable,
			Name:      "chain_depth",
			Help:      "Histogram of pause list records visited per traversal.",
			Buckets:   prom.LinearBuckets(1, 1, 8),
		},
		[]string{LabelOp})
)

func RegisterMetrics() {
	prom.MustRegister(DispatchCounter)
	prom.MustRegister(DispatchHistogram)
	prom.MustRegister(ChainDepthHistogram)
}
