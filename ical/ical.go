// @license
// Copyright (C) 2025  Dinko Korunic
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ical

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/dkorunic/jingtang-timetable/fetch"
	"github.com/dkorunic/jingtang-timetable/logger"
	"github.com/google/renameio/v2/maybe"
	"github.com/jordic/goics"
)

const filePerm = 0o644

var (
	ErrEventDate = errors.New("unable to parse session date")
	ErrNoDetail  = errors.New("no session detail")

	textEscaper   = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	textUnescaper = strings.NewReplacer(`\\`, `\`, `\;`, ";", `\,`, ",", `\n`, "\n", `\N`, "\n")
)

// NewEvent converts a formatted course session into an all-day Event, keyed by its timeAdd identifier.
func NewEvent(ce ClassEvent) (Event, error) {
	d := ce.Detail
	if d == nil {
		return Event{}, fmt.Errorf("%w: %v", ErrNoDetail, ce.TimeAdd)
	}

	date, err := dateparse.ParseLocal(d.Date)
	if err != nil {
		return Event{}, fmt.Errorf("%w %q: %w", ErrEventDate, d.Date, err)
	}

	sb := &strings.Builder{}

	for i, f := range d.Fields() {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(fetch.ClassDescriptions[i])
		sb.WriteString(": ")
		sb.WriteString(f)
	}

	return Event{
		Date:        date,
		UID:         ce.TimeAdd + UIDSuffix,
		Summary:     strings.TrimSpace(d.CourseName + " " + d.Period),
		Location:    strings.TrimSpace(d.Building + " " + d.Room),
		Description: sb.String(),
	}, nil
}

// FromClassEvents converts course sessions to Events, skipping sessions without a parsable date.
func FromClassEvents(ces []ClassEvent) Events {
	evs := make(Events, 0, len(ces))

	for _, ce := range ces {
		ev, err := NewEvent(ce)
		if err != nil {
			logger.Warn().Msgf("Skipping calendar export of session %v: %v", ce.TimeAdd, err)

			continue
		}

		evs = append(evs, ev)
	}

	return evs
}

// EmitICal builds a VCALENDAR component with one all-day VEVENT per Event.
func (e Events) EmitICal() goics.Componenter {
	c := goics.NewComponent()
	c.SetType("VCALENDAR")
	c.AddProperty("VERSION", "2.0")
	c.AddProperty("PRODID", ProdID)
	c.AddProperty("CALSCALE", "GREGORIAN")

	for _, ev := range e {
		s := goics.NewComponent()
		s.SetType("VEVENT")

		k, v := goics.FormatDateField(EventDateStart, ev.Date)
		s.AddProperty(k, v)
		s.AddProperty(EventUID, ev.UID)
		s.AddProperty(EventSummary, textEscaper.Replace(ev.Summary))
		s.AddProperty(EventLocation, textEscaper.Replace(ev.Location))
		s.AddProperty(EventDescription, textEscaper.Replace(ev.Description))

		c.AddComponent(s)
	}

	return c
}

// ConsumeICal is a ICS data decoder that extracts DTSTART, UID, SUMMARY, LOCATION and DESCRIPTION values,
// parsing dates with maximum flexibility and in local timezone, returning optional error.
func (e *Events) ConsumeICal(c *goics.Calendar, err error) error {
	if err != nil {
		return err
	}

	for _, el := range c.Events {
		node := el.Data

		start, ok := node[EventDateStart]
		if !ok {
			continue
		}

		date, err := dateparse.ParseLocal(start.Val)
		if err != nil {
			return err
		}

		*e = append(*e, Event{
			Date:        date,
			UID:         nodeVal(node, EventUID),
			Summary:     textUnescaper.Replace(nodeVal(node, EventSummary)),
			Location:    textUnescaper.Replace(nodeVal(node, EventLocation)),
			Description: textUnescaper.Replace(nodeVal(node, EventDescription)),
		})
	}

	return nil
}

// Merge returns events of e replaced or extended by events of other with the same UID, ordered by date.
func (e Events) Merge(other Events) Events {
	merged := make(Events, 0, len(e)+len(other))

	for _, ev := range e {
		if !slices.ContainsFunc(other, func(o Event) bool { return o.UID == ev.UID }) {
			merged = append(merged, ev)
		}
	}

	merged = append(merged, other...)

	slices.SortStableFunc(merged, func(a, b Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.UID, b.UID)
	})

	return merged
}

// Encode writes events as an ICS calendar.
func Encode(w io.Writer, e Events) {
	goics.NewICalEncode(w).Encode(e)
}

// Decode reads events from an ICS calendar.
func Decode(r io.Reader) (Events, error) {
	var evs Events

	if err := goics.NewDecoder(r).Decode(&evs); err != nil {
		return nil, err
	}

	return evs, nil
}

// WriteFile merges events into the ICS calendar at path, creating it when missing, and atomically replaces the
// file.
func WriteFile(path string, e Events) error {
	existing, err := readFile(path)
	if err != nil {
		return err
	}

	merged := existing.Merge(e)

	var buf bytes.Buffer

	Encode(&buf, merged)

	if err := maybe.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return err
	}

	logger.Debug().Msgf("Wrote %v calendar events (%v new) to %v", len(merged), len(e), path)

	return nil
}

// readFile decodes an existing ICS file, treating a missing file as an empty calendar.
func readFile(path string) (Events, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Events{}, nil
		}

		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func nodeVal(node map[string]*goics.IcsNode, key string) string {
	if n, ok := node[key]; ok && n != nil {
		return n.Val
	}

	return ""
}
