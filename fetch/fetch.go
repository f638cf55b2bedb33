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

package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/corpix/uarand"
	"github.com/dkorunic/jingtang-timetable/logger"
)

const (
	Timeout       = 60 * time.Second // remote API can get really slow sometimes
	BaseURL       = "https://api.greathiit.com/api"
	StatusSuccess = 200          // body status code denoting success
	SessionCookie = "JSESSIONID" // cookie carrying the session ID

	// WebViewUA is the User-Agent of the WeChat mini-program webview on Windows.
	WebViewUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/122.0.0.0 Safari/537.36 MicroMessenger/7.0.20.1781(0x6700143B) NetType/WIFI " +
		"MiniProgramEnv/Windows WindowsWechat/WMPF WindowsWechat(0x63090c25)XWEB/11581"
	// MiniProgramReferer is the page frame of the hosting mini-program.
	MiniProgramReferer = "https://servicewechat.com/wx3db178bd95510b66/86/page-frame.html"
)

const (
	LoginPath    = "/user/loginUsername"
	CalendarPath = "/pub/getCourseCalendar"
	WeekPath     = "/timetable/getDataWeek"
	ClassPath    = "/sign/getCurrentClass"
)

// DefaultOptions returns Options matching the official mini-program client.
func DefaultOptions() Options {
	return Options{
		BaseURL:   BaseURL,
		UserAgent: WebViewUA,
		Referer:   MiniProgramReferer,
		Timeout:   Timeout,
	}
}

// NewClientWithContext creates new *Client with static mini-program headers and an empty session.
func NewClientWithContext(ctx context.Context, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}

	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	tr, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected default transport", ErrNetwork)
	}

	tr = tr.Clone()

	if opts.InsecureSkipVerify {
		logger.Warn().Msgf("TLS certificate verification is disabled for %v", u.Host)

		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	ua := opts.UserAgent
	if opts.RandomUserAgent {
		ua = uarand.GetRandom()
		logger.Debug().Msgf("Using random User-Agent: %v", ua)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: tr,
		},
		baseURL: u,
		ctx:     ctx,
		headers: staticHeaders(ua, opts.Referer),
	}

	return c, nil
}

// Login authenticates with username, password and a client generated code. On success the issued session ID
// and token are stored and attached to every following request. On failure the session stays untouched and the
// returned error tells a rejected login (ErrAuthRejected) apart from transport and protocol problems.
func (c *Client) Login(username, password, code string) (bool, error) {
	p, err := c.getJSON(LoginPath, url.Values{
		"username": {username},
		"password": {password},
		"code":     {code},
	})
	if err != nil {
		return false, err
	}

	if status, ok := p.Code(); !ok || status != StatusSuccess {
		msg, _ := p.String("msg")

		return false, fmt.Errorf("%w: code %v %v", ErrAuthRejected, status, msg)
	}

	sessionID, idOK := p.String("data", "sessionId")
	token, tokenOK := p.String("data", "token")

	if !idOK || !tokenOK {
		return false, fmt.Errorf("%w: %v", ErrAuthRejected, "session ID or token missing")
	}

	c.session = Session{ID: sessionID, Token: token}
	c.headers.Set("Cookie", SessionCookie+"="+sessionID)
	c.headers.Set("Authorization", token)

	return true, nil
}

// GetSemesterInfo fetches semester calendar metadata as raw decoded JSON.
func (c *Client) GetSemesterInfo() (Payload, error) {
	return c.getJSON(CalendarPath, nil)
}

// GetWeekSchedule fetches all scheduled course sessions of a teaching week as raw decoded JSON.
func (c *Client) GetWeekSchedule(week int) (Payload, error) {
	return c.getJSON(WeekPath, url.Values{"week": {strconv.Itoa(week)}})
}

// GetClassInfo fetches details of a single course session identified by its timeAdd value.
func (c *Client) GetClassInfo(timeAdd string) (Payload, error) {
	return c.getJSON(ClassPath, url.Values{"timeAdd": {timeAdd}})
}

// Session returns a copy of the current session credentials.
func (c *Client) Session() Session {
	return c.session
}

// CloseConnections closes all connections on its transport.
func (c *Client) CloseConnections() {
	c.httpClient.CloseIdleConnections()
}
