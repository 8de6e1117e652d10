// Package metrics exposes Prometheus counters for appointment operations.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"appointment-scheduler/internal/schedule"
)

const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Recorder counts appointment operations by outcome.
type Recorder struct {
	ops *prometheus.CounterVec
}

var _ schedule.Observer = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_operations_total",
			Help: "Appointment create/update/delete calls by result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(r.ops)
	return r
}

func (r *Recorder) Observe(op string, err error) {
	r.ops.WithLabelValues(op, Result(err)).Inc()
}

// Result classifies a service error into a label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case schedule.IsValidation(err):
		return ResultInvalid
	case errors.Is(err, schedule.ErrConflict):
		return ResultConflict
	case errors.Is(err, schedule.ErrNotFound):
		return ResultNotFound
	}
	return ResultError
}
