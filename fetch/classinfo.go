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

package fetch

import (
	"github.com/dkorunic/jingtang-timetable/logger"
)

// ClassDetail is a flattened, labelled course session record. JSON keys are the labels shown to the User.
type ClassDetail struct {
	CourseName   string `json:"课程名称"`
	TeacherName  string `json:"教师"`
	Building     string `json:"教学楼"`
	Room         string `json:"教室"`
	Week         string `json:"周次"`
	Date         string `json:"日期"`
	Period       string `json:"节次"`
	Weekday      string `json:"星期"`
	Credit       string `json:"学分"`
	ClassName    string `json:"班级"`
	Assessment   string `json:"考核方式"`
	ExamForm     string `json:"考试形式"`
	CourseStatus string `json:"课程状态"`
}

// ClassDescriptions lists ClassDetail labels in field order.
var ClassDescriptions = []string{
	"课程名称",
	"教师",
	"教学楼",
	"教室",
	"周次",
	"日期",
	"节次",
	"星期",
	"学分",
	"班级",
	"考核方式",
	"考试形式",
	"课程状态",
}

// Fields returns ClassDetail values in the same order as ClassDescriptions.
func (d *ClassDetail) Fields() []string {
	return []string{
		d.CourseName,
		d.TeacherName,
		d.Building,
		d.Room,
		d.Week,
		d.Date,
		d.Period,
		d.Weekday,
		d.Credit,
		d.ClassName,
		d.Assessment,
		d.ExamForm,
		d.CourseStatus,
	}
}

// FormatClassInfo flattens a class info response into a ClassDetail. It returns nil when the response status
// code is not a success or when data.ClassInfo is absent, meaning no detail is available. Individual fields
// missing from an existing ClassInfo object are left empty.
func FormatClassInfo(p Payload) *ClassDetail {
	status, codeOK := p.Code()
	info, infoOK := p.Object("data", "ClassInfo")

	if !codeOK || status != StatusSuccess || !infoOK {
		return nil
	}

	var missing []string

	get := func(key string) string {
		v, ok := info.String(key)
		if !ok {
			missing = append(missing, key)
		}

		return v
	}

	d := &ClassDetail{
		CourseName:   get("courseName"),
		TeacherName:  get("teacherName"),
		Building:     get("school"),
		Room:         get("room"),
		Week:         get("week"),
		Date:         get("time"),
		Period:       get("jie"),
		Weekday:      get("xq"),
		Credit:       get("credit"),
		ClassName:    get("className"),
		Assessment:   get("cursProperty"),
		ExamForm:     get("cursForm"),
		CourseStatus: get("courseStatus"),
	}

	if len(missing) > 0 {
		logger.Debug().Msgf("Class info is missing fields %v, leaving them empty", missing)
	}

	return d
}
