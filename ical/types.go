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
	"time"

	"github.com/dkorunic/jingtang-timetable/fetch"
)

const (
	EventDateStart   = "DTSTART"
	EventDescription = "DESCRIPTION"
	EventSummary     = "SUMMARY"
	EventLocation    = "LOCATION"
	EventUID         = "UID"

	ProdID    = "-//dkorunic//jingtang-timetable//ZH"
	UIDSuffix = "@jingtang-timetable"
)

// Event structure holds a single course session exported as an all-day calendar event.
type Event struct {
	Date                  time.Time
	UID                   string
	Summary               string
	Location, Description string
}

// Events is a slice of Event structure.
type Events []Event

// ClassEvent is a course session identifier paired with its formatted details.
type ClassEvent struct {
	TimeAdd string
	Detail  *fetch.ClassDetail
}
