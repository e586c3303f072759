package observability

import (
	"errors"

	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// commentMutations counts mutation attempts.
	// Labels: operation (create, edit, delete, toggle_like), outcome
	commentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "virdanthread",
		Subsystem: "comments",
		Name:      "mutations_total",
		Help:      "Comment mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	// threadSize tracks how many comments a single post read assembled.
	threadSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "virdanthread",
		Subsystem: "threads",
		Name:      "comments",
		Help:      "Comments assembled per post read",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

// RecordMutation counts one mutation, classifying err into an outcome label.
func RecordMutation(operation string, err error) {
	commentMutations.WithLabelValues(operation, Outcome(err)).Inc()
}

func RecordThreadSize(comments int) {
	threadSize.Observe(float64(comments))
}

func Outcome(err error) string {
	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	var forbiddenErr *model.ForbiddenError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &forbiddenErr):
		return "forbidden"
	default:
		return "error"
	}
}
