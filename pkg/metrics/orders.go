package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics tracks order ledger activity.
type OrderMetrics struct {
	created       prometheus.Counter
	statusChanges *prometheus.CounterVec
	globalScans   prometheus.Counter
	scannedShards prometheus.Counter
}

// NewOrderMetrics registers the ledger metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mall_orders_created_total",
		Help: "Orders appended to a ledger shard.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mall_order_status_changes_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	globalScans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mall_order_global_scans_total",
		Help: "Cross-shard scans of the order ledger.",
	})
	scannedShards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mall_order_scanned_shards_total",
		Help: "Order shards visited by cross-shard scans.",
	})
	reg.MustRegister(created, statusChanges, globalScans, scannedShards)
	return &OrderMetrics{
		created:       created,
		statusChanges: statusChanges,
		globalScans:   globalScans,
		scannedShards: scannedShards,
	}
}

func (o *OrderMetrics) IncCreated() {
	if o == nil || o.created == nil {
		return
	}
	o.created.Inc()
}

// IncStatusChange counts one order moved to status.
func (o *OrderMetrics) IncStatusChange(status string) {
	if o == nil || o.statusChanges == nil {
		return
	}
	o.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

// ObserveGlobalScan records one cross-shard scan that visited shards keys.
func (o *OrderMetrics) ObserveGlobalScan(shards int) {
	if o == nil || o.globalScans == nil {
		return
	}
	o.globalScans.Inc()
	o.scannedShards.Add(float64(shards))
}
