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

package main

import (
	"github.com/dkorunic/jingtang-timetable/config"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

const (
	DefaultConfFile = ".jingtang.toml" // default configuration filename
	envVarPrefix    = "JINGTANG"       // environment variables override defaults, e.g. JINGTANG_WEEK
)

var (
	debug, colorLogs, insecure                       *bool
	confFile, username, password, outFormat, icsFile *string
	week                                             *int
	usage                                            string // rendered flags help, set on a failed parse
)

// newFlagSet initializes flags configuration.
func newFlagSet() *ff.FlagSet {
	fs := ff.NewFlagSet("jingtang-timetable")

	debug = fs.Bool('v', "verbose", "enable verbose/debug log level")
	colorLogs = fs.Bool('l', "colorlogs", "enable colorized console logs")
	confFile = fs.String('f', "conffile", DefaultConfFile, "configuration file (in TOML)")
	username = fs.String('u', "username", "", "academic administration username")
	password = fs.String('p', "password", "", "academic administration password")
	week = fs.Int('w', "week", 0, "week number to print (default from configuration)")
	outFormat = fs.String('o', "format", "", "output format: json, plain or markup")
	icsFile = fs.String('i', "ics", "", "export printed course sessions to an ICS calendar file")
	insecure = fs.Bool('k', "insecure", "skip TLS certificate verification")

	return fs
}

// parseFlags parses input arguments and flags, including JINGTANG_ prefixed environment variables.
func parseFlags(args []string) error {
	fs := newFlagSet()

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(envVarPrefix)); err != nil {
		usage = ffhelp.Flags(fs).String()

		return err
	}

	return nil
}

// applyFlags overrides configuration with values given on the command line or through the environment.
func applyFlags(cfg config.TomlConfig) config.TomlConfig {
	if *username != "" {
		cfg.User.Username = *username
	}

	if *password != "" {
		cfg.User.Password = *password
	}

	if *week != 0 {
		cfg.Output.Week = *week
	}

	if *outFormat != "" {
		cfg.Output.Format = *outFormat
	}

	if *icsFile != "" {
		cfg.Output.ICSFile = *icsFile
	}

	if *insecure {
		cfg.API.InsecureSkipVerify = true
	}

	return cfg
}
