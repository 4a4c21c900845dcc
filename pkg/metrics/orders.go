package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle activity.
type OrderMetrics struct {
	transitions   *prometheus.CounterVec
	auditRows     prometheus.Counter
	dashboardRows prometheus.Counter
}

// NewOrderMetrics registers the order lifecycle metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions, labeled by resulting status.",
	}, []string{"status"})
	auditRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_log_rows_total",
		Help: "Audit log rows appended.",
	})
	dashboardRows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_data_rows_total",
		Help: "Dashboard data points appended.",
	})
	reg.MustRegister(transitions, auditRows, dashboardRows)
	return &OrderMetrics{
		transitions:   transitions,
		auditRows:     auditRows,
		dashboardRows: dashboardRows,
	}
}

// IncTransition increments the transition counter for the resulting status.
func (m *OrderMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// AddAuditRows counts appended audit log rows.
func (m *OrderMetrics) AddAuditRows(n int) {
	if m == nil || m.auditRows == nil {
		return
	}
	m.auditRows.Add(float64(n))
}

// AddDashboardRows counts appended dashboard data points.
func (m *OrderMetrics) AddDashboardRows(n int) {
	if m == nil || m.dashboardRows == nil {
		return
	}
	m.dashboardRows.Add(float64(n))
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
