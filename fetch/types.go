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
	"net/http"
	"net/url"
	"time"
)

// Options holds connection settings of a Client.
type Options struct {
	BaseURL            string        // API base URL, endpoint paths are joined to it
	UserAgent          string        // User-Agent sent with every request
	Referer            string        // Referer sent with every request
	Timeout            time.Duration // per-request timeout, 0 disables it
	InsecureSkipVerify bool          // skip TLS certificate verification
	RandomUserAgent    bool          // use a random browser User-Agent instead of UserAgent
}

// Session holds credentials issued by the remote service on a successful login.
type Session struct {
	ID    string
	Token string
}

// Client structure holds all HTTP Client related fields.
//
//nolint:containedctx
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	ctx        context.Context
	headers    http.Header
	session    Session
}
