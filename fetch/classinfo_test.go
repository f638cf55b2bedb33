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
	"reflect"
	"testing"
)

func mustPayload(t *testing.T, body string) Payload {
	t.Helper()

	p, err := NewPayload([]byte(body))
	if err != nil {
		t.Fatalf("NewPayload(%q) failed: %v", body, err)
	}

	return p
}

func TestFormatClassInfo(t *testing.T) {
	t.Parallel()

	p := mustPayload(t, `{"code":200,"data":{"ClassInfo":{"courseName":"Math","teacherName":"Li","school":"A",
		"room":"101","week":"15","time":"2024-06-01","jie":"3","xq":"Mon","credit":"2","className":"C1",
		"cursProperty":"Required","cursForm":"Written","courseStatus":"Active","ignored":"x"}}}`)

	expected := &ClassDetail{
		CourseName:   "Math",
		TeacherName:  "Li",
		Building:     "A",
		Room:         "101",
		Week:         "15",
		Date:         "2024-06-01",
		Period:       "3",
		Weekday:      "Mon",
		Credit:       "2",
		ClassName:    "C1",
		Assessment:   "Required",
		ExamForm:     "Written",
		CourseStatus: "Active",
	}

	d := FormatClassInfo(p)
	if !reflect.DeepEqual(d, expected) {
		t.Errorf("FormatClassInfo() = %+v, want %+v", d, expected)
	}
}

func TestFormatClassInfoAbsent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{name: "NotFound", body: `{"code":404}`},
		{name: "MissingClassInfo", body: `{"code":200,"data":{}}`},
		{name: "NullData", body: `{"code":200,"data":null}`},
		{name: "ClassInfoNotObject", body: `{"code":200,"data":{"ClassInfo":"none"}}`},
		{name: "ErrorWithClassInfo", body: `{"code":500,"data":{"ClassInfo":{"courseName":"Math"}}}`},
		{name: "NoCode", body: `{"data":{"ClassInfo":{"courseName":"Math"}}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if d := FormatClassInfo(mustPayload(t, tc.body)); d != nil {
				t.Errorf("FormatClassInfo() = %+v, want nil", d)
			}
		})
	}
}

func TestFormatClassInfoPartial(t *testing.T) {
	t.Parallel()

	p := mustPayload(t, `{"code":200,"data":{"ClassInfo":{"courseName":"Physics","week":15,"credit":2.5,"room":null}}}`)

	d := FormatClassInfo(p)
	if d == nil {
		t.Fatal("FormatClassInfo() returned nil for an existing ClassInfo")
	}

	if d.CourseName != "Physics" || d.Week != "15" || d.Credit != "2.5" {
		t.Errorf("unexpected record: %+v", d)
	}

	if d.Room != "" || d.TeacherName != "" {
		t.Errorf("missing fields should be empty, got %+v", d)
	}
}

func TestClassDetailFields(t *testing.T) {
	t.Parallel()

	d := ClassDetail{CourseName: "Math", CourseStatus: "Active"}
	fields := d.Fields()

	if len(fields) != len(ClassDescriptions) {
		t.Fatalf("Fields() has %d values, ClassDescriptions has %d", len(fields), len(ClassDescriptions))
	}

	if fields[0] != "Math" || fields[len(fields)-1] != "Active" {
		t.Errorf("Fields() order mismatch: %v", fields)
	}

	// labels must follow struct field JSON tags
	typ := reflect.TypeOf(d)
	for i := range typ.NumField() {
		if tag := typ.Field(i).Tag.Get("json"); tag != ClassDescriptions[i] {
			t.Errorf("field %v has tag %q, want %q", typ.Field(i).Name, tag, ClassDescriptions[i])
		}
	}
}
