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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/dkorunic/jingtang-timetable/logger"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrNetwork          = errors.New("network error")
	ErrDecode           = errors.New("unable to decode response")
	ErrAuthRejected     = errors.New("authentication rejected")
)

// lazily parsed payloads keep numbers as sent, so identifiers and codes survive verbatim
var payloadAPI = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// staticHeaders builds the header set the mini-program webview sends with every request.
func staticHeaders(userAgent, referer string) http.Header {
	h := make(http.Header)

	h.Set("Connection", "keep-alive")
	h.Set("xweb_xhr", "1")
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "*/*")
	h.Set("Sec-Fetch-Site", "cross-site")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Referer", referer)
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Accept-Language", "zh-CN,zh;q=0.9")

	return h
}

// getJSON does a GET request to the API endpoint path with optional query parameters, returning decoded JSON
// object body.
func (c *Client) getJSON(path string, params url.Values) (Payload, error) {
	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Payload{}, err
	}

	req.Header = c.headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		select {
		case <-c.ctx.Done():
			return Payload{}, c.ctx.Err()
		default:
			return Payload{}, fmt.Errorf("%w: %w", ErrNetwork, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain rest of the body
		io.Copy(io.Discard, resp.Body) //nolint:errcheck

		return Payload{}, fmt.Errorf("%w: %v", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := readBody(resp)
	if err != nil {
		return Payload{}, err
	}

	logger.Debug().Msgf("Fetched %v from %v", humanize.Bytes(uint64(len(body))), path)

	return NewPayload(body)
}

// readBody reads the whole response body, undoing Content-Encoding. Transparent decompression of the HTTP
// transport is off because Accept-Encoding is set explicitly.
func readBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var r io.Reader

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	switch encoding {
	case "", "identity":
		return raw, nil
	case "br":
		r = brotli.NewReader(bytes.NewReader(raw))
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		defer zr.Close()

		r = zr
	case "deflate":
		// deflate is supposed to be zlib wrapped, but some servers send raw deflate streams
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			zr = flate.NewReader(bytes.NewReader(raw))
		}
		defer zr.Close()

		r = zr
	case "zstd":
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		defer zr.Close()

		r = zr
	default:
		return nil, fmt.Errorf("%w: unsupported content encoding %q", ErrDecode, encoding)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return body, nil
}
