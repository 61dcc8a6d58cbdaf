// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	log "github.com/sirupsen/logrus"

	"go.helloworld.dev/hello/logging"
	"go.helloworld.dev/hello/settings"
)

type options struct {
	LogLevel string `long:"log-level" default:"info" description:"log level"`
	Settings string `long:"settings" env:"HELLOWORLD_SETTINGS" description:"path to a TOML settings file"`
}

var opts options

func main() {
	parser := newParser(&opts)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return
		}
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func newParser(o *options) *flags.Parser {
	parser := flags.NewParser(o, flags.HelpFlag|flags.PassDoubleDash)
	mustAddCommand(parser, "runserver", "Start a development web server",
		"Starts a web server on the given address. The default is 127.0.0.1:8000.", &runserverCommand{opts: o})
	mustAddCommand(parser, "check", "Check the settings for problems",
		"Loads and validates the settings and builds the router.", &checkCommand{opts: o})
	mustAddCommand(parser, "lambda", "Serve API Gateway proxy events",
		"Runs the application as an AWS Lambda function behind API Gateway.", &lambdaCommand{opts: o})
	return parser
}

func mustAddCommand(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		log.WithError(err).Fatal("Failed to register command ", name)
	}
}

// loadSettings configures logging, then builds the settings from defaults,
// the settings file and the environment.
func loadSettings(o *options) (*settings.Settings, error) {
	logging.SetLogLevel(o.LogLevel)

	s, err := settings.Load(o.Settings)
	if err != nil {
		return nil, err
	}
	if err := s.LoadEnv(); err != nil {
		return nil, err
	}
	return s, nil
}
