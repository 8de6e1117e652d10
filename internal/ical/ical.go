// Package ical renders appointments as an iCalendar feed.
package ical

import (
	"io"

	ics "github.com/arran4/golang-ical"

	"appointment-scheduler/internal/model"
)

const (
	productID = "-//appointment-scheduler//EN"
	uidDomain = "@appointment-scheduler"
)

// Write serializes apts as a VCALENDAR named name. Times are written in UTC.
func Write(w io.Writer, name string, apts []model.Appointment) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, a := range apts {
		ev := cal.AddEvent(a.ID + uidDomain)
		ev.SetDtStampTime(a.UpdatedAt)
		ev.SetCreatedTime(a.CreatedAt)
		ev.SetModifiedAt(a.UpdatedAt)
		ev.SetStartAt(a.StartTime)
		ev.SetEndAt(a.EndTime)
		ev.SetSummary(a.Title)
		if a.Description != "" {
			ev.SetDescription(a.Description)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
