package schedulev1

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Field numbers follow appointment/v1/schedule.proto. Appointment fields
// 7-9 (status, location, attendee_ids) are reserved.

type Appointment struct {
	ID          string
	Title       string
	Description string
	StartTime   *timestamppb.Timestamp
	EndTime     *timestamppb.Timestamp
	OwnerID     string
	CreatedAt   *timestamppb.Timestamp
	UpdatedAt   *timestamppb.Timestamp
}

func (m *Appointment) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	e.string(2, m.Title)
	e.string(3, m.Description)
	e.timestamp(4, m.StartTime)
	e.timestamp(5, m.EndTime)
	e.string(6, m.OwnerID)
	e.timestamp(10, m.CreatedAt)
	e.timestamp(11, m.UpdatedAt)
	return e.result()
}

func (m *Appointment) Unmarshal(b []byte) error {
	*m = Appointment{}
	return fields(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.ID = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Title = string(f.raw)
		case f.is(3, protowire.BytesType):
			m.Description = string(f.raw)
		case f.is(4, protowire.BytesType):
			m.StartTime, err = f.timestamp()
		case f.is(5, protowire.BytesType):
			m.EndTime, err = f.timestamp()
		case f.is(6, protowire.BytesType):
			m.OwnerID = string(f.raw)
		case f.is(10, protowire.BytesType):
			m.CreatedAt, err = f.timestamp()
		case f.is(11, protowire.BytesType):
			m.UpdatedAt, err = f.timestamp()
		}
		return err
	})
}

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (m *RegisterRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Email)
	e.string(2, m.Password)
	e.string(3, m.Name)
	return e.result()
}

func (m *RegisterRequest) Unmarshal(b []byte) error {
	*m = RegisterRequest{}
	return fields(b, func(f field) error {
		switch {
		case f.is(1, protowire.BytesType):
			m.Email = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Password = string(f.raw)
		case f.is(3, protowire.BytesType):
			m.Name = string(f.raw)
		}
		return nil
	})
}

type RegisterResponse struct {
	UserID string
	Token  string
}

func (m *RegisterResponse) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.UserID)
	e.string(2, m.Token)
	return e.result()
}

func (m *RegisterResponse) Unmarshal(b []byte) error {
	*m = RegisterResponse{}
	return fields(b, func(f field) error {
		switch {
		case f.is(1, protowire.BytesType):
			m.UserID = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Token = string(f.raw)
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Email)
	e.string(2, m.Password)
	return e.result()
}

func (m *LoginRequest) Unmarshal(b []byte) error {
	*m = LoginRequest{}
	return fields(b, func(f field) error {
		switch {
		case f.is(1, protowire.BytesType):
			m.Email = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Password = string(f.raw)
		}
		return nil
	})
}

type LoginResponse struct {
	Token  string
	UserID string
	Name   string
}

func (m *LoginResponse) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Token)
	e.string(2, m.UserID)
	e.string(3, m.Name)
	return e.result()
}

func (m *LoginResponse) Unmarshal(b []byte) error {
	*m = LoginResponse{}
	return fields(b, func(f field) error {
		switch {
		case f.is(1, protowire.BytesType):
			m.Token = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.UserID = string(f.raw)
		case f.is(3, protowire.BytesType):
			m.Name = string(f.raw)
		}
		return nil
	})
}

type CreateAppointmentRequest struct {
	Title       string
	Description string
	StartTime   *timestamppb.Timestamp
	EndTime     *timestamppb.Timestamp
}

func (m *CreateAppointmentRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Title)
	e.string(2, m.Description)
	e.timestamp(3, m.StartTime)
	e.timestamp(4, m.EndTime)
	return e.result()
}

func (m *CreateAppointmentRequest) Unmarshal(b []byte) error {
	*m = CreateAppointmentRequest{}
	return fields(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.Title = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Description = string(f.raw)
		case f.is(3, protowire.BytesType):
			m.StartTime, err = f.timestamp()
		case f.is(4, protowire.BytesType):
			m.EndTime, err = f.timestamp()
		}
		return err
	})
}

// appointmentResponse is the shape shared by the create, get and update
// responses: a single appointment in field 1.
type appointmentResponse struct {
	Appointment *Appointment
}

func (m *appointmentResponse) marshal() ([]byte, error) {
	var e encoder
	e.appointment(1, m.Appointment)
	return e.result()
}

func (m *appointmentResponse) unmarshal(b []byte) error {
	*m = appointmentResponse{}
	return fields(b, func(f field) error {
		if f.is(1, protowire.BytesType) {
			m.Appointment = &Appointment{}
			return m.Appointment.Unmarshal(f.raw)
		}
		return nil
	})
}

type CreateAppointmentResponse appointmentResponse

func (m *CreateAppointmentResponse) Marshal() ([]byte, error) {
	return (*appointmentResponse)(m).marshal()
}

func (m *CreateAppointmentResponse) Unmarshal(b []byte) error {
	return (*appointmentResponse)(m).unmarshal(b)
}

type GetAppointmentRequest struct {
	ID string
}

func (m *GetAppointmentRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	return e.result()
}

func (m *GetAppointmentRequest) Unmarshal(b []byte) error {
	*m = GetAppointmentRequest{}
	return fields(b, func(f field) error {
		if f.is(1, protowire.BytesType) {
			m.ID = string(f.raw)
		}
		return nil
	})
}

type GetAppointmentResponse appointmentResponse

func (m *GetAppointmentResponse) Marshal() ([]byte, error) {
	return (*appointmentResponse)(m).marshal()
}

func (m *GetAppointmentResponse) Unmarshal(b []byte) error {
	return (*appointmentResponse)(m).unmarshal(b)
}

// ListAppointmentsRequest lists every appointment of the caller when both
// bounds are nil, otherwise those starting in [RangeStart, RangeEnd).
type ListAppointmentsRequest struct {
	RangeStart *timestamppb.Timestamp
	RangeEnd   *timestamppb.Timestamp
}

func (m *ListAppointmentsRequest) Marshal() ([]byte, error) {
	var e encoder
	e.timestamp(1, m.RangeStart)
	e.timestamp(2, m.RangeEnd)
	return e.result()
}

func (m *ListAppointmentsRequest) Unmarshal(b []byte) error {
	*m = ListAppointmentsRequest{}
	return fields(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.RangeStart, err = f.timestamp()
		case f.is(2, protowire.BytesType):
			m.RangeEnd, err = f.timestamp()
		}
		return err
	})
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment
}

func (m *ListAppointmentsResponse) Marshal() ([]byte, error) {
	var e encoder
	for _, a := range m.Appointments {
		e.appointment(1, a)
	}
	return e.result()
}

func (m *ListAppointmentsResponse) Unmarshal(b []byte) error {
	*m = ListAppointmentsResponse{}
	return fields(b, func(f field) error {
		if !f.is(1, protowire.BytesType) {
			return nil
		}
		a := &Appointment{}
		if err := a.Unmarshal(f.raw); err != nil {
			return err
		}
		m.Appointments = append(m.Appointments, a)
		return nil
	})
}

type UpdateAppointmentRequest struct {
	ID          string
	Title       string
	Description string
	StartTime   *timestamppb.Timestamp
	EndTime     *timestamppb.Timestamp
}

func (m *UpdateAppointmentRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	e.string(2, m.Title)
	e.string(3, m.Description)
	e.timestamp(4, m.StartTime)
	e.timestamp(5, m.EndTime)
	return e.result()
}

func (m *UpdateAppointmentRequest) Unmarshal(b []byte) error {
	*m = UpdateAppointmentRequest{}
	return fields(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.ID = string(f.raw)
		case f.is(2, protowire.BytesType):
			m.Title = string(f.raw)
		case f.is(3, protowire.BytesType):
			m.Description = string(f.raw)
		case f.is(4, protowire.BytesType):
			m.StartTime, err = f.timestamp()
		case f.is(5, protowire.BytesType):
			m.EndTime, err = f.timestamp()
		}
		return err
	})
}

type UpdateAppointmentResponse appointmentResponse

func (m *UpdateAppointmentResponse) Marshal() ([]byte, error) {
	return (*appointmentResponse)(m).marshal()
}

func (m *UpdateAppointmentResponse) Unmarshal(b []byte) error {
	return (*appointmentResponse)(m).unmarshal(b)
}

type DeleteAppointmentRequest struct {
	ID string
}

func (m *DeleteAppointmentRequest) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.ID)
	return e.result()
}

func (m *DeleteAppointmentRequest) Unmarshal(b []byte) error {
	*m = DeleteAppointmentRequest{}
	return fields(b, func(f field) error {
		if f.is(1, protowire.BytesType) {
			m.ID = string(f.raw)
		}
		return nil
	})
}

type DeleteAppointmentResponse struct{}

func (m *DeleteAppointmentResponse) Marshal() ([]byte, error) { return nil, nil }

func (m *DeleteAppointmentResponse) Unmarshal(b []byte) error {
	return fields(b, func(field) error { return nil })
}

type CheckConflictRequest struct {
	StartTime *timestamppb.Timestamp
	EndTime   *timestamppb.Timestamp
	ExcludeID string
}

func (m *CheckConflictRequest) Marshal() ([]byte, error) {
	var e encoder
	e.timestamp(1, m.StartTime)
	e.timestamp(2, m.EndTime)
	e.string(3, m.ExcludeID)
	return e.result()
}

func (m *CheckConflictRequest) Unmarshal(b []byte) error {
	*m = CheckConflictRequest{}
	return fields(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.StartTime, err = f.timestamp()
		case f.is(2, protowire.BytesType):
			m.EndTime, err = f.timestamp()
		case f.is(3, protowire.BytesType):
			m.ExcludeID = string(f.raw)
		}
		return err
	})
}

type CheckConflictResponse struct {
	Conflict bool
}

func (m *CheckConflictResponse) Marshal() ([]byte, error) {
	var e encoder
	e.bool(1, m.Conflict)
	return e.result()
}

func (m *CheckConflictResponse) Unmarshal(b []byte) error {
	*m = CheckConflictResponse{}
	return fields(b, func(f field) error {
		if f.is(1, protowire.VarintType) {
			m.Conflict = protowire.DecodeBool(f.u)
		}
		return nil
	})
}
