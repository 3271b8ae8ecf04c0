package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the overdraft service. Counters cover
// the partner API hot paths and the back-office mutation flow.
type Metrics struct {
	TokensIssued     prometheus.Counter
	ChecksPerformed  prometheus.Counter
	ClientsCreated   prometheus.Counter
	LimitUpdates     prometheus.Counter
	FailedMutations  prometheus.Counter
	AdminLogins      prometheus.Counter
	InvalidDocuments prometheus.Counter
}

// New registers all service metrics against the given registerer. Pass a
// fresh prometheus.NewRegistry() in tests to avoid cross-test collisions.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TokensIssued: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_tokens_issued_total",
			Help: "Total number of partner access tokens issued",
		}),
		ChecksPerformed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_checks_performed_total",
			Help: "Total number of limit lookups served to partners",
		}),
		ClientsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_clients_created_total",
			Help: "Total number of clients registered",
		}),
		LimitUpdates: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_limit_changes_total",
			Help: "Total number of successful limit mutations",
		}),
		FailedMutations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_failed_mutations_total",
			Help: "Total number of limit mutations that failed to persist",
		}),
		AdminLogins: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_admin_logins_total",
			Help: "Total number of successful back-office logins",
		}),
		InvalidDocuments: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "overdraft_invalid_documents_total",
			Help: "Total number of requests rejected for a bad document number",
		}),
	}
}
