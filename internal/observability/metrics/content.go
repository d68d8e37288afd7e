package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ContentWritesTotal counts successful writes per resource (bio, project,
// contact) and operation (create, update, delete, mark_read).
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of successful content writes",
	},
	[]string{"resource", "operation"},
)
