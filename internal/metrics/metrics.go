package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationDuration tracks the latency of voucher batch generation
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "voucher_generation_duration_seconds",
			Help: "Duration of voucher generation requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.01,  // 10ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
				10.0,  // 10s
				30.0,  // 30s
			},
		},
		[]string{"status"},
	)

	// VouchersGenerated counts committed vouchers
	VouchersGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vouchers_generated_total",
			Help: "Number of vouchers committed to the store",
		},
	)

	// CodeCollisions counts draws rejected because the code was taken or reserved
	CodeCollisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voucher_code_collisions_total",
			Help: "Number of drawn voucher codes that had to be redrawn",
		},
		[]string{"reason"}, // in_use or reserved
	)

	// VouchersReleased counts vouchers removed by campaign deletion
	VouchersReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vouchers_released_total",
			Help: "Number of vouchers released by campaign deletion",
		},
	)
)

// RecordGenerationDuration records the duration of a generation request
func RecordGenerationDuration(status string, duration float64) {
	GenerationDuration.WithLabelValues(status).Observe(duration)
}

// RecordCollision records a redraw for the given reason
func RecordCollision(reason string) {
	CodeCollisions.WithLabelValues(reason).Inc()
}
