package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the public booking flow.
type BookingMetrics struct {
	slotQueriesTotal  *prometheus.CounterVec
	slotsOffered      prometheus.Histogram
	bookingsTotal     *prometheus.CounterVec
	confirmationsEach *prometheus.CounterVec
	bookingLatency    prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "slot_queries_total",
			Help:      "Total availability queries",
		}, []string{"status"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "slots_offered",
			Help:      "Number of free slots returned per availability query",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointment creation attempts",
		}, []string{"status"}),
		confirmationsEach: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Total confirmation token redemptions",
		}, []string{"status"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "create_latency_seconds",
			Help:      "Latency of appointment creation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotQueriesTotal, m.slotsOffered, m.bookingsTotal, m.confirmationsEach, m.bookingLatency)
	return m
}

func (m *BookingMetrics) ObserveSlotQuery(status string, offered int) {
	if m == nil {
		return
	}
	m.slotQueriesTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.slotsOffered.Observe(float64(offered))
	}
}

func (m *BookingMetrics) ObserveBooking(status string, seconds float64) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
	m.bookingLatency.Observe(seconds)
}

func (m *BookingMetrics) ObserveConfirmation(status string) {
	if m == nil {
		return
	}
	m.confirmationsEach.WithLabelValues(status).Inc()
}
