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

package config

import (
	"time"
)

// User struct holds academic administration credentials.
type User struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// API struct holds remote API connection settings.
type API struct {
	BaseURL            string        `toml:"base_url"`
	UserAgent          string        `toml:"user_agent"`
	Referer            string        `toml:"referer"`
	Timeout            time.Duration `toml:"timeout"`
	InsecureSkipVerify bool          `toml:"insecure_skip_verify"`
	RandomUserAgent    bool          `toml:"random_user_agent"`
}

// Output struct holds timetable output settings.
type Output struct {
	Week    int    `toml:"week"`
	Format  string `toml:"format"`
	ICSFile string `toml:"ics_file"`
}

// TomlConfig struct holds all other configuration structures.
type TomlConfig struct {
	User   User   `toml:"user"`
	API    API    `toml:"api"`
	Output Output `toml:"output"`
}
