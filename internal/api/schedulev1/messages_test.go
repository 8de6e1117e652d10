package schedulev1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var start = time.Date(2025, 9, 25, 9, 30, 0, 500, time.UTC)

// appendTS encodes a google.protobuf.Timestamp field the long way.
func appendTS(b []byte, num protowire.Number, t time.Time) []byte {
	var inner []byte
	inner = protowire.AppendTag(inner, 1, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(t.Unix()))
	inner = protowire.AppendTag(inner, 2, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(t.Nanosecond()))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func TestCreateRequestDecodesHandEncodedBytes(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "Dentist")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "yearly")
	b = appendTS(b, 3, start)
	b = appendTS(b, 4, start.Add(time.Hour))
	// location and attendees from older clients are skipped
	b = protowire.AppendTag(b, 5, protowire.BytesType)
	b = protowire.AppendString(b, "Room A")
	b = protowire.AppendTag(b, 9, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 7)

	var req CreateAppointmentRequest
	require.NoError(t, req.Unmarshal(b))
	assert.Equal(t, "Dentist", req.Title)
	assert.Equal(t, "yearly", req.Description)
	assert.True(t, req.StartTime.AsTime().Equal(start))
	assert.True(t, req.EndTime.AsTime().Equal(start.Add(time.Hour)))
}

func TestAppointmentRoundTrip(t *testing.T) {
	in := &Appointment{
		ID:          "a1",
		Title:       "Standup",
		Description: "daily",
		StartTime:   timestamppb.New(start),
		EndTime:     timestamppb.New(start.Add(15 * time.Minute)),
		OwnerID:     "u1",
		CreatedAt:   timestamppb.New(start.Add(-time.Hour)),
		UpdatedAt:   timestamppb.New(start.Add(-time.Minute)),
	}
	resp := &ListAppointmentsResponse{Appointments: []*Appointment{in, {ID: "a2", Title: "Retro"}}}

	b, err := resp.Marshal()
	require.NoError(t, err)

	var out ListAppointmentsResponse
	require.NoError(t, out.Unmarshal(b))
	require.Len(t, out.Appointments, 2)
	got := out.Appointments[0]
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "u1", got.OwnerID)
	assert.True(t, got.StartTime.AsTime().Equal(start))
	assert.True(t, got.UpdatedAt.AsTime().Equal(start.Add(-time.Minute)))
	assert.Nil(t, out.Appointments[1].StartTime)
}

func TestUnsetTimestampIsZeroTime(t *testing.T) {
	var req CheckConflictRequest
	require.NoError(t, req.Unmarshal(nil))
	assert.True(t, Time(req.StartTime).IsZero())
}

func TestTruncatedInput(t *testing.T) {
	b, err := (&LoginRequest{Email: "a@b.com", Password: "secret123"}).Marshal()
	require.NoError(t, err)

	var req LoginRequest
	assert.Error(t, req.Unmarshal(b[:len(b)-3]))
}

func TestCheckConflictResponseBool(t *testing.T) {
	b, err := (&CheckConflictResponse{Conflict: true}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x01}, b)

	var out CheckConflictResponse
	require.NoError(t, out.Unmarshal(b))
	assert.True(t, out.Conflict)

	b, err = (&CheckConflictResponse{}).Marshal()
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestCodec(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	b, err := c.Marshal(&GetAppointmentRequest{ID: "x"})
	require.NoError(t, err)
	var req GetAppointmentRequest
	require.NoError(t, c.Unmarshal(b, &req))
	assert.Equal(t, "x", req.ID)

	// generated messages still go through the protobuf runtime
	ts := timestamppb.New(start)
	b, err = c.Marshal(ts)
	require.NoError(t, err)
	want, _ := proto.Marshal(ts)
	assert.Equal(t, want, b)

	_, err = c.Marshal(struct{}{})
	assert.Error(t, err)
}
