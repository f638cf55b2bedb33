// @license
// Copyright (C) 2022  Dinko Korunic
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

package timetable

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dkorunic/jingtang-timetable/fetch"
	"github.com/dkorunic/jingtang-timetable/format"
	"github.com/dkorunic/jingtang-timetable/ical"
	"github.com/dkorunic/jingtang-timetable/logger"
)

var (
	ErrLoginFailed = errors.New("login failed")
	ErrCalendar    = errors.New("unable to export calendar")
	ErrOutput      = errors.New("unable to write timetable")
)

// API is the part of the remote API used after a successful login.
type API interface {
	GetSemesterInfo() (fetch.Payload, error)
	GetWeekSchedule(week int) (fetch.Payload, error)
	GetClassInfo(timeAdd string) (fetch.Payload, error)
}

// Options holds settings of a single timetable run.
type Options struct {
	Username string
	Password string
	Week     int
	Format   format.Formatter
	ICSFile  string
	Client   fetch.Options
}

// Run logs in with a fresh login code and, on success, writes semester information followed by every available
// course session detail of the requested week to w. Sessions are processed one by one in the order the API
// returns them; the first transport or protocol error ends the run.
func Run(ctx context.Context, w io.Writer, o Options) error {
	client, err := fetch.NewClientWithContext(ctx, o.Client)
	if err != nil {
		return err
	}

	defer client.CloseConnections()

	code := fetch.GenerateCode()
	logger.Info().Msgf("Using login code: %v", code)

	// login has to complete before any other request carries the session
	ok, err := client.Login(o.Username, o.Password, code)
	if !ok {
		return fmt.Errorf("%w for user %v: %w", ErrLoginFailed, o.Username, err)
	}

	logger.Info().Msgf("Logged in as user %v", o.Username)

	return PrintWeek(client, w, o)
}

// PrintWeek writes semester information and formatted course session details of o.Week to w, optionally
// exporting them to an ICS calendar.
func PrintWeek(api API, w io.Writer, o Options) error {
	semester, err := api.GetSemesterInfo()
	if err != nil {
		return err
	}

	s, err := format.JSONIndent(semester.Raw())
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%v\n%v\n", format.SemesterTitle, s); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	week, err := api.GetWeekSchedule(o.Week)
	if err != nil {
		return err
	}

	status, _ := week.Code()
	sessions, _ := week.List("data")

	if status != fetch.StatusSuccess || len(sessions) == 0 {
		logger.Warn().Msgf("No course sessions found for week %v (code %v)", o.Week, status)

		return nil
	}

	logger.Debug().Msgf("Found %v course sessions in week %v", len(sessions), o.Week)

	formatFn := o.Format
	if formatFn == nil {
		formatFn = format.JSONMsg
	}

	if _, err := fmt.Fprintf(w, "\n%v\n", format.WeekTitle(o.Week)); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	var printed []ical.ClassEvent

	for i, session := range sessions {
		timeAdd, ok := session.String("timeAdd")
		if !ok {
			logger.Warn().Msgf("Course session %v has no timeAdd, skipping", i+1)

			continue
		}

		raw, err := api.GetClassInfo(timeAdd)
		if err != nil {
			return err
		}

		d := fetch.FormatClassInfo(raw)
		if d == nil {
			logger.Debug().Msgf("No details available for course session %v", timeAdd)

			continue
		}

		record := formatFn(format.ClassTitle(i+1), fetch.ClassDescriptions, d.Fields())
		if _, err := fmt.Fprintf(w, "\n%v", record); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}

		printed = append(printed, ical.ClassEvent{TimeAdd: timeAdd, Detail: d})
	}

	logger.Info().Msgf("Printed %v of %v course sessions for week %v", len(printed), len(sessions), o.Week)

	if o.ICSFile != "" {
		if err := ical.WriteFile(o.ICSFile, ical.FromClassEvents(printed)); err != nil {
			return fmt.Errorf("%w: %w", ErrCalendar, err)
		}

		logger.Info().Msgf("Exported week %v to calendar %v", o.Week, o.ICSFile)
	}

	return nil
}
