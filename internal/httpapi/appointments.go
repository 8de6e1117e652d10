package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"appointment-scheduler/internal/ical"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/schedule"
)

const (
	dateLayout          = "2006-01-02"
	defaultUpcomingDays = 3
)

type appointmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

type appointmentView struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func view(a model.Appointment) appointmentView {
	return appointmentView{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Title:       a.Title,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// views never returns nil, so an empty list encodes as [].
func views(apts []model.Appointment) []appointmentView {
	out := make([]appointmentView, len(apts))
	for i := range apts {
		out[i] = view(apts[i])
	}
	return out
}

func (a appointmentRequest) input() schedule.Input {
	return schedule.Input{
		Title:       a.Title,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
	}
}

type upcomingQuery struct {
	Days int `validate:"min=1,max=365"`
}

func owner(r *http.Request) string {
	uid, _ := middleware.UserID(r.Context())
	return uid
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !decode(w, r, &req) {
		return
	}
	apt, err := s.appointments.Create(r.Context(), owner(r), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/appointments/"+apt.ID)
	writeJSON(w, http.StatusCreated, view(apt))
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	apt, err := s.appointments.Get(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view(apt))
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !decode(w, r, &req) {
		return
	}
	apt, err := s.appointments.Update(r.Context(), chi.URLParam(r, "id"), owner(r), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view(apt))
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := s.appointments.Delete(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listAppointments serves ?date=, ?start=&end= or, with neither, every
// appointment of the caller.
func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		apts []model.Appointment
		err  error
	)
	switch {
	case q.Has("date"):
		day, perr := time.ParseInLocation(dateLayout, q.Get("date"), s.cfg.Location)
		if perr != nil {
			writeMessage(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		apts, err = s.appointments.ListByDateRange(r.Context(), owner(r), day, day.AddDate(0, 0, 1))
	case q.Has("start") || q.Has("end"):
		from, to, msg := s.parseRange(q.Get("start"), q.Get("end"))
		if msg != "" {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
		apts, err = s.appointments.ListByDateRange(r.Context(), owner(r), from, to)
	default:
		apts, err = s.appointments.ListByOwner(r.Context(), owner(r))
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views(apts))
}

// parseRange accepts RFC 3339 timestamps or plain dates. A plain end date
// is inclusive.
func (s *Server) parseRange(rawStart, rawEnd string) (from, to time.Time, msg string) {
	if rawStart == "" || rawEnd == "" {
		return from, to, "start and end must be given together"
	}
	from, _, ok := s.parseBound(rawStart)
	if !ok {
		return from, to, "start must be a date or RFC 3339 time"
	}
	to, isDate, ok := s.parseBound(rawEnd)
	if !ok {
		return from, to, "end must be a date or RFC 3339 time"
	}
	if isDate {
		to = to.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return from, to, "end must be after start"
	}
	return from, to, ""
}

func (s *Server) parseBound(v string) (t time.Time, isDate, ok bool) {
	if t, err := time.ParseInLocation(dateLayout, v, s.cfg.Location); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

func (s *Server) upcoming(w http.ResponseWriter, r *http.Request) {
	q := upcomingQuery{Days: defaultUpcomingDays}
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "days must be a number")
			return
		}
		q.Days = n
	}
	if err := s.validate.Struct(q); err != nil {
		writeMessage(w, http.StatusBadRequest, "days must be between 1 and 365")
		return
	}

	apts, err := s.appointments.Upcoming(r.Context(), owner(r), q.Days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views(apts))
}

func (s *Server) calendar(w http.ResponseWriter, r *http.Request) {
	apts, err := s.appointments.ListByOwner(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="appointments.ics"`)
	if err := ical.Write(w, "Appointments", apts); err != nil {
		s.log.Warn("write calendar", zap.Error(err))
	}
}
