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

package timetable

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dkorunic/jingtang-timetable/fetch"
	"github.com/dkorunic/jingtang-timetable/format"
)

const (
	loginOK  = `{"code":200,"data":{"sessionId":"S1","token":"T1"}}`
	semester = `{"code":200,"data":{"termName":"2023-2024-2"}}`
	mathInfo = `{"code":200,"data":{"ClassInfo":{"courseName":"Math","teacherName":"Li","school":"A","room":"101",` +
		`"week":"15","time":"2024-06-03","jie":"1-2","xq":"Mon","credit":"2","className":"C1",` +
		`"cursProperty":"Required","cursForm":"Written","courseStatus":"Active"}}}`
	artInfo = `{"code":200,"data":{"ClassInfo":{"courseName":"Art","teacherName":"Wang","school":"B","room":"202",` +
		`"week":"15","time":"2024-06-01","jie":"3","xq":"Sat","credit":"1","className":"C1",` +
		`"cursProperty":"Elective","cursForm":"Paper","courseStatus":"Active"}}}`
)

type stubAPI struct {
	mu        sync.Mutex
	responses map[string]string
	status    map[string]int
	requests  []*http.Request
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(context.Background()))
	s.mu.Unlock()

	key := r.URL.Path
	if timeAdd := r.URL.Query().Get("timeAdd"); timeAdd != "" {
		key += "?" + timeAdd
	}

	if code, ok := s.status[key]; ok {
		w.WriteHeader(code)

		return
	}

	body, ok := s.responses[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)

		return
	}

	w.Write([]byte(body))
}

func (s *stubAPI) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p []string
	for _, r := range s.requests {
		p = append(p, r.URL.Path+"?"+r.URL.Query().Get("timeAdd"))
	}

	return p
}

func runStub(t *testing.T, stub *stubAPI, o Options) (string, error) {
	t.Helper()

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	o.Client = fetch.DefaultOptions()
	o.Client.BaseURL = srv.URL

	var buf bytes.Buffer
	err := Run(context.Background(), &buf, o)

	return buf.String(), err
}

func TestRunPrintsSessionsInOrder(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{responses: map[string]string{
		fetch.LoginPath:         loginOK,
		fetch.CalendarPath:      semester,
		fetch.WeekPath:          `{"code":200,"data":[{"timeAdd":"t2"},{"timeAdd":"t1"}]}`,
		fetch.ClassPath + "?t2": mathInfo,
		fetch.ClassPath + "?t1": artInfo,
	}}

	out, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n := strings.Count(out, "[第"); n != 2 {
		t.Fatalf("expected 2 records, got %d in %q", n, out)
	}

	math, art := strings.Index(out, `"Math"`), strings.Index(out, `"Art"`)
	if math < 0 || art < 0 || math > art {
		t.Errorf("records printed out of remote order: %q", out)
	}

	if !strings.Contains(out, format.SemesterTitle) || !strings.Contains(out, "2023-2024-2") {
		t.Errorf("semester info not printed: %q", out)
	}

	want := []string{
		fetch.LoginPath + "?",
		fetch.CalendarPath + "?",
		fetch.WeekPath + "?",
		fetch.ClassPath + "?t2",
		fetch.ClassPath + "?t1",
	}

	got := stub.paths()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("requests = %v, want %v", got, want)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()

	for _, r := range stub.requests[1:] {
		if r.Header.Get("Authorization") != "T1" || !strings.Contains(r.Header.Get("Cookie"), "S1") {
			t.Errorf("request %v is missing session headers: %v", r.URL.Path, r.Header)
		}
	}
}

func TestRunSkipsMissingDetails(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{responses: map[string]string{
		fetch.LoginPath:         loginOK,
		fetch.CalendarPath:      semester,
		fetch.WeekPath:          `{"code":200,"data":[{"timeAdd":"t1"},{"other":1},{"timeAdd":"t3"}]}`,
		fetch.ClassPath + "?t1": `{"code":404,"msg":"not found"}`,
		fetch.ClassPath + "?t3": mathInfo,
	}}

	out, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15, Format: format.PlainMsg})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n := strings.Count(out, "课程名称: "); n != 1 {
		t.Errorf("expected a single record, got %d in %q", n, out)
	}

	// position follows the remote listing, skipped sessions included
	if !strings.Contains(out, format.ClassTitle(3)) {
		t.Errorf("expected title %q in %q", format.ClassTitle(3), out)
	}
}

func TestRunLoginFailure(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{responses: map[string]string{
		fetch.LoginPath:    `{"code":401,"msg":"bad password"}`,
		fetch.CalendarPath: semester,
	}}

	out, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15})
	if !errors.Is(err, ErrLoginFailed) || !errors.Is(err, fetch.ErrAuthRejected) {
		t.Fatalf("Run() error = %v, want %v", err, ErrLoginFailed)
	}

	if out != "" {
		t.Errorf("nothing should be printed after a failed login, got %q", out)
	}

	if got := stub.paths(); len(got) != 1 {
		t.Errorf("only login should be requested, got %v", got)
	}
}

func TestRunDetailError(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{
		responses: map[string]string{
			fetch.LoginPath:         loginOK,
			fetch.CalendarPath:      semester,
			fetch.WeekPath:          `{"code":200,"data":[{"timeAdd":"t1"},{"timeAdd":"t2"}]}`,
			fetch.ClassPath + "?t2": mathInfo,
		},
		status: map[string]int{fetch.ClassPath + "?t1": http.StatusBadGateway},
	}

	_, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15})
	if !errors.Is(err, fetch.ErrUnexpectedStatus) {
		t.Fatalf("Run() error = %v, want %v", err, fetch.ErrUnexpectedStatus)
	}

	for _, p := range stub.paths() {
		if p == fetch.ClassPath+"?t2" {
			t.Error("run should stop at the first failing detail request")
		}
	}
}

func TestRunEmptyWeek(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{responses: map[string]string{
		fetch.LoginPath:    loginOK,
		fetch.CalendarPath: semester,
		fetch.WeekPath:     `{"code":500,"data":[{"timeAdd":"t1"}]}`,
	}}

	out, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if strings.Contains(out, format.WeekTitle(15)) {
		t.Errorf("week listing should not be printed: %q", out)
	}

	if got := stub.paths(); len(got) != 3 {
		t.Errorf("no detail should be requested, got %v", got)
	}
}

func TestRunExportsCalendar(t *testing.T) {
	t.Parallel()

	stub := &stubAPI{responses: map[string]string{
		fetch.LoginPath:         loginOK,
		fetch.CalendarPath:      semester,
		fetch.WeekPath:          `{"code":200,"data":[{"timeAdd":"t1"},{"timeAdd":"t2"}]}`,
		fetch.ClassPath + "?t1": mathInfo,
		fetch.ClassPath + "?t2": artInfo,
	}}

	path := filepath.Join(t.TempDir(), "week.ics")

	if _, err := runStub(t, stub, Options{Username: "u", Password: "p", Week: 15, ICSFile: path}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("calendar not written: %v", err)
	}

	if n := strings.Count(string(b), "BEGIN:VEVENT"); n != 2 {
		t.Errorf("expected 2 calendar events, got %d", n)
	}
}

type fakeAPI struct {
	t        *testing.T
	semester string
	week     string
	classes  map[string]string
	calls    int
}

func (f *fakeAPI) payload(body string) fetch.Payload {
	f.t.Helper()

	p, err := fetch.NewPayload([]byte(body))
	if err != nil {
		f.t.Fatalf("NewPayload(%q) failed: %v", body, err)
	}

	return p
}

func (f *fakeAPI) GetSemesterInfo() (fetch.Payload, error) {
	f.calls++

	return f.payload(f.semester), nil
}

func (f *fakeAPI) GetWeekSchedule(int) (fetch.Payload, error) {
	f.calls++

	return f.payload(f.week), nil
}

func (f *fakeAPI) GetClassInfo(timeAdd string) (fetch.Payload, error) {
	f.calls++

	body, ok := f.classes[timeAdd]
	if !ok {
		return fetch.Payload{}, errors.New("unexpected call")
	}

	return f.payload(body), nil
}

func TestPrintWeekEmpty(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		t:        t,
		semester: `{"code":200,"data":{"term":"学期"}}`,
		week:     `{"code":200,"data":[]}`,
	}

	var buf bytes.Buffer
	if err := PrintWeek(api, &buf, Options{Week: 1}); err != nil {
		t.Fatalf("PrintWeek failed: %v", err)
	}

	if api.calls != 2 {
		t.Errorf("expected 2 API calls, got %d", api.calls)
	}

	if !strings.Contains(buf.String(), "学期") {
		t.Errorf("semester info not printed: %q", buf.String())
	}
}

func TestPrintWeekSemesterKeyOrder(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		t:        t,
		semester: `{"code":200,"data":{"termName":"2023-2024-2","beginDate":"2024-02-26","weeks":20}}`,
		week:     `{"code":200,"data":[]}`,
	}

	var buf bytes.Buffer
	if err := PrintWeek(api, &buf, Options{Week: 1}); err != nil {
		t.Fatalf("PrintWeek failed: %v", err)
	}

	out := buf.String()
	code, term, begin := strings.Index(out, `"code"`), strings.Index(out, `"termName"`), strings.Index(out, `"beginDate"`)

	if code < 0 || term < 0 || begin < 0 || code > term || term > begin {
		t.Errorf("semester info should keep the received key order: %q", out)
	}
}

type failingWriter struct {
	after int
}

var errClosedPipe = errors.New("closed pipe")

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errClosedPipe
	}

	f.after--

	return len(p), nil
}

func TestPrintWeekWriteError(t *testing.T) {
	t.Parallel()

	// semester, week title, then the first record
	for after := range 3 {
		api := &fakeAPI{
			t:        t,
			semester: semester,
			week:     `{"code":200,"data":[{"timeAdd":"t1"}]}`,
			classes:  map[string]string{"t1": mathInfo},
		}

		err := PrintWeek(api, &failingWriter{after: after}, Options{Week: 15})
		if !errors.Is(err, ErrOutput) || !errors.Is(err, errClosedPipe) {
			t.Errorf("PrintWeek() after %d writes error = %v, want %v", after, err, ErrOutput)
		}
	}
}
