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

package format

import (
	"errors"
	"fmt"
)

const (
	JSON   = "json"
	Plain  = "plain"
	Markup = "markup"

	SemesterTitle = "学期信息："           // semester information title
	weekTitle     = "第%d周课表详细信息：" // week timetable title
	classTitle    = "第%d门课程"          // N-th course session of the week
)

var ErrUnknownFormat = errors.New("unknown output format")

// Formatter renders a titled record given as parallel description and field lists.
type Formatter func(title string, descriptions, fields []string) string

// ByName returns the Formatter registered under name.
func ByName(name string) (Formatter, error) {
	switch name {
	case JSON, "":
		return JSONMsg, nil
	case Plain:
		return PlainMsg, nil
	case Markup:
		return MarkupMsg, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// WeekTitle returns the title of a week timetable listing.
func WeekTitle(week int) string {
	return fmt.Sprintf(weekTitle, week)
}

// ClassTitle returns the title of the index-th (1-based) course session of a week.
func ClassTitle(index int) string {
	return fmt.Sprintf(classTitle, index)
}
