// Package metrics defines and registers the custom Prometheus metrics for
// the project tracker API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CustomersCreatedTotal counts newly created customers.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// CustomersDeletedTotal counts deleted customers. Dependent projects removed
// by the cascade are not counted separately.
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customers deleted (cascading to their projects).",
	},
)

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// UpdateConflictsTotal counts optimistic-concurrency conflicts reported to
// clients.
// Label:
//   - entity: "customer" or "project"
var UpdateConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "update_conflicts_total",
		Help:      "Total number of updates rejected with a concurrency conflict.",
	},
	[]string{"entity"},
)
