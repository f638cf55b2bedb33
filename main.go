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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/dkorunic/jingtang-timetable/config"
	"github.com/dkorunic/jingtang-timetable/format"
	"github.com/dkorunic/jingtang-timetable/logger"
	"github.com/dkorunic/jingtang-timetable/timetable"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
)

const (
	maxMemRatio = 0.9
	envFile     = ".env"
)

var (
	GitTag    = ""
	GitCommit = ""
	GitDirty  = ""
	BuildTime = ""
)

// main is the entry point of the application.
//
// It loads the optional .env file, parses flags, sets the global log level, configures GOMEMLIMIT, sets up a
// context with signal integration, loads the TOML config merged with flags and environment, and then does a
// single timetable run printing to stdout.
func main() {
	// .env is optional and never overrides the existing environment
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading %v: %v\n", envFile, err)
		os.Exit(1)
	}

	if err := parseFlags(os.Args[1:]); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "%v\n\n%v\n", err, usage)
		os.Exit(1)
	}

	initLog()

	logger.Info().Msgf("jingtang-timetable %v %v%v, built on %v, with %v", GitTag, GitCommit, GitDirty,
		BuildTime, runtime.Version())

	// configure GOMEMLIMIT to 90% of available memory (Cgroups v2/v1 or system)
	limit, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(maxMemRatio),
		memlimit.WithProvider(
			memlimit.ApplyFallback(
				memlimit.FromCgroup,
				memlimit.FromSystem,
			),
		),
	)

	if err != nil {
		logger.Debug().Msgf("Unable to get/set GOMEMLIMIT: %v", err)
	} else {
		logger.Debug().Msgf("GOMEMLIMIT is set to: %v", humanize.Bytes(uint64(limit))) //nolint:gosec
	}

	// context with signal integration
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// load TOML config, then let flags and environment complete it
	cfg, err := loadConfig(*confFile)
	if err != nil {
		logger.Fatal().Msgf("Error loading configuration: %v", err)
	}

	cfg = applyFlags(cfg)

	if err := config.Check(cfg); err != nil {
		logger.Fatal().Msgf("Configuration error: %v", err)
	}

	formatFn, err := format.ByName(cfg.Output.Format)
	if err != nil {
		logger.Fatal().Msgf("Configuration error: %v", err)
	}

	start := time.Now()

	err = timetable.Run(ctx, os.Stdout, timetable.Options{
		Username: cfg.User.Username,
		Password: cfg.User.Password,
		Week:     cfg.Output.Week,
		Format:   formatFn,
		ICSFile:  cfg.Output.ICSFile,
		Client:   cfg.ClientOptions(),
	})

	elapsed := durafmt.Parse(time.Since(start)).LimitFirstN(2).String() //nolint:mnd

	switch {
	case errors.Is(err, timetable.ErrLoginFailed):
		logger.Fatal().Msgf("登录失败 (login failed) after %v: %v", elapsed, err)
	case err != nil:
		logger.Fatal().Msgf("Run failed after %v: %v", elapsed, err)
	}

	logger.Info().Msgf("Exiting with a success, run took %v", elapsed)
}

// loadConfig loads the TOML configuration file. A missing default configuration file is not an error, as
// everything can be given through flags and environment instead.
func loadConfig(file string) (config.TomlConfig, error) {
	cfg, err := config.LoadConfig(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && file == DefaultConfFile {
			logger.Debug().Msgf("Configuration file %v not found, using defaults", file)

			return config.Default(), nil
		}

		return cfg, err
	}

	return cfg, nil
}
