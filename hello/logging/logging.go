// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

// SetLogLevel sets the level for internal logging. Needs to be called
// early during startup so that settings loading is logged at the right level.
func SetLogLevel(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set log level. Valid log levels are:", logrus.AllLevels)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(NewFormatter())
}

// NewFormatter returns the text formatter used by every command.
func NewFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "02/Jan/2006 15:04:05",
		DisableColors:   true,
	}
}

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}
