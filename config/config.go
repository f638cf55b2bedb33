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
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/dkorunic/jingtang-timetable/fetch"
	"github.com/dkorunic/jingtang-timetable/format"
	"github.com/dkorunic/jingtang-timetable/logger"
)

const DefaultWeek = 1

var (
	ErrNoUser        = errors.New("username and password are required")
	ErrInvalidUser   = errors.New("username is not valid")
	ErrInvalidURL    = errors.New("API base URL is not valid")
	ErrInvalidWeek   = errors.New("week must be a positive number")
	ErrInvalidFormat = errors.New("output format is not valid")
)

// Default returns configuration matching the official mini-program client.
func Default() TomlConfig {
	o := fetch.DefaultOptions()

	return TomlConfig{
		API: API{
			BaseURL:   o.BaseURL,
			UserAgent: o.UserAgent,
			Referer:   o.Referer,
			Timeout:   o.Timeout,
		},
		Output: Output{
			Week:   DefaultWeek,
			Format: format.JSON,
		},
	}
}

// LoadConfig attempts to load and decode configuration file in TOML format over the defaults, optionally
// returning an error. Validation is left to Check, so that flags and environment can complete the configuration
// first.
func LoadConfig(file string) (TomlConfig, error) {
	config := Default()
	if _, err := toml.DecodeFile(file, &config); err != nil {
		return config, err
	}

	return config, nil
}

// Check does a minimal sanity checking of the complete configuration.
func Check(config TomlConfig) error {
	if err := checkUserConf(config); err != nil {
		return err
	}

	if err := checkAPIConf(config); err != nil {
		return err
	}

	return checkOutputConf(config)
}

// ClientOptions converts API configuration to fetch client options.
func (c TomlConfig) ClientOptions() fetch.Options {
	return fetch.Options{
		BaseURL:            c.API.BaseURL,
		UserAgent:          c.API.UserAgent,
		Referer:            c.API.Referer,
		Timeout:            c.API.Timeout,
		InsecureSkipVerify: c.API.InsecureSkipVerify,
		RandomUserAgent:    c.API.RandomUserAgent,
	}
}

// checkUserConf ensures that both username and password are defined and that the username has no whitespace.
func checkUserConf(config TomlConfig) error {
	if config.User.Username == "" || config.User.Password == "" {
		return ErrNoUser
	}

	if !isValidUsername(config.User.Username) {
		return fmt.Errorf("%w: %q", ErrInvalidUser, config.User.Username)
	}

	return nil
}

// checkAPIConf ensures that the API base URL is an absolute HTTP(S) URL, warning about disabled TLS
// verification and non-default identity headers.
func checkAPIConf(config TomlConfig) error {
	if !isValidBaseURL(config.API.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, config.API.BaseURL)
	}

	if config.API.InsecureSkipVerify {
		logger.Warn().Msg("Configuration: TLS certificate verification disabled")
	}

	if config.API.UserAgent != fetch.WebViewUA || config.API.Referer != fetch.MiniProgramReferer {
		logger.Info().Msg("Configuration: non-default User-Agent or Referer, API might reject requests")
	}

	return nil
}

// checkOutputConf ensures that the week number is positive and the output format is known.
func checkOutputConf(config TomlConfig) error {
	if !isValidWeek(config.Output.Week) {
		return fmt.Errorf("%w: %v", ErrInvalidWeek, config.Output.Week)
	}

	if _, err := format.ByName(config.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return nil
}
