package schedulev1

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// encoder appends proto3 fields. Zero values are omitted.
type encoder struct {
	b   []byte
	err error
}

func (e *encoder) string(num protowire.Number, s string) {
	if s == "" {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, s)
}

func (e *encoder) bool(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

func (e *encoder) bytes(num protowire.Number, v []byte) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, v)
}

func (e *encoder) timestamp(num protowire.Number, ts *timestamppb.Timestamp) {
	if ts == nil || e.err != nil {
		return
	}
	inner, err := proto.Marshal(ts)
	if err != nil {
		e.err = err
		return
	}
	e.bytes(num, inner)
}

func (e *encoder) appointment(num protowire.Number, a *Appointment) {
	if a == nil || e.err != nil {
		return
	}
	inner, err := a.Marshal()
	if err != nil {
		e.err = err
		return
	}
	e.bytes(num, inner)
}

func (e *encoder) result() ([]byte, error) {
	return e.b, e.err
}

// field is one decoded tag and its value. Only varint and length-delimited
// values are kept; other wire types are skipped.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
	u   uint64
}

func (f field) is(num protowire.Number, typ protowire.Type) bool {
	return f.num == num && f.typ == typ
}

func (f field) timestamp() (*timestamppb.Timestamp, error) {
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(f.raw, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// fields walks an encoded message and hands every field to fn.
func fields(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.raw, b = v, b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.u, b = v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
