package schedulev1

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"appointment-scheduler/internal/model"
)

func FromModel(a model.Appointment) *Appointment {
	return &Appointment{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Title:       a.Title,
		Description: a.Description,
		StartTime:   timestamppb.New(a.StartTime),
		EndTime:     timestamppb.New(a.EndTime),
		CreatedAt:   timestamppb.New(a.CreatedAt),
		UpdatedAt:   timestamppb.New(a.UpdatedAt),
	}
}

func FromModels(apts []model.Appointment) []*Appointment {
	out := make([]*Appointment, len(apts))
	for i := range apts {
		out[i] = FromModel(apts[i])
	}
	return out
}

// Time converts ts, mapping an unset timestamp to the zero time so that
// missing fields fail validation as missing.
func Time(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
