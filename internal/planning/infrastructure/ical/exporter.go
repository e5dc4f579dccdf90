package ical

import (
	"bytes"
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"

	"github.com/felixgeelhaar/optiflow/internal/planning/domain"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

const (
	// PropXOptiFlowTask carries the id of the task bound to a block.
	PropXOptiFlowTask = "X-OPTIFLOW-TASK"

	productID = "-//OptiFlow//Schedule//EN"
	uidDomain = "optiflow"
)

// Exporter renders a day of time blocks as an iCalendar document.
type Exporter struct {
	loc *time.Location
	now func() time.Time
}

// NewExporter creates an exporter resolving slot clocks in loc.
// A nil loc means time.Local.
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{loc: loc, now: time.Now}
}

// Calendar builds one VEVENT per block of date.
func (e *Exporter) Calendar(date value_objects.Date, blocks []domain.TimeBlock) *goical.Calendar {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	stamp := e.now().UTC()
	for _, block := range blocks {
		cal.Children = append(cal.Children, e.event(date, block, stamp).Component)
	}
	return cal
}

// Encode writes the calendar of date to w.
func (e *Exporter) Encode(w io.Writer, date value_objects.Date, blocks []domain.TimeBlock) error {
	if err := goical.NewEncoder(w).Encode(e.Calendar(date, blocks)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Export returns the encoded calendar of date.
func (e *Exporter) Export(date value_objects.Date, blocks []domain.TimeBlock) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, date, blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) event(date value_objects.Date, block domain.TimeBlock, stamp time.Time) *goical.Event {
	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, EventUID(date, block.SlotID))
	event.Props.SetDateTime(goical.PropDateTimeStamp, stamp)
	event.Props.SetDateTime(goical.PropDateTimeStart, block.StartAt(date, e.loc).UTC())
	event.Props.SetDateTime(goical.PropDateTimeEnd, block.EndAt(date, e.loc).UTC())
	event.Props.SetText(goical.PropSummary, block.Activity)
	if block.Description != "" {
		event.Props.SetText(goical.PropDescription, block.Description)
	}

	if block.BoundTaskID != nil {
		prop := goical.NewProp(PropXOptiFlowTask)
		prop.Value = *block.BoundTaskID
		event.Props[PropXOptiFlowTask] = []goical.Prop{*prop}
	}
	return event
}

// EventUID is the stable identifier of a slot on a given day.
func EventUID(date value_objects.Date, slotID string) string {
	return fmt.Sprintf("%s-%s@%s", date.String(), slotID, uidDomain)
}
