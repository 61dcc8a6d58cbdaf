// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"

	"go.helloworld.dev/hello/lambdaproxy"
	"go.helloworld.dev/hello/server"
)

type runserverCommand struct {
	opts *options

	Args struct {
		AddrPort string `positional-arg-name:"addrport" description:"port number or address:port"`
	} `positional-args:"yes"`
}

func (c *runserverCommand) Execute(args []string) error {
	s, err := loadSettings(c.opts)
	if err != nil {
		return err
	}

	host, port, err := ParseAddrPort(c.Args.AddrPort)
	if err != nil {
		return err
	}

	router, err := server.NewRouter(s)
	if err != nil {
		return err
	}

	srv := server.NewServer(host, port, router)
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listen on %s:%d: %w", host, port, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("debug", s.Debug).Infof("Starting development server at %s", srv.URL("/"))
	log.Info("Quit the server with CONTROL-C.")
	return srv.Serve(ctx)
}

type checkCommand struct {
	opts *options
	out  io.Writer
}

func (c *checkCommand) Execute(args []string) error {
	s, err := loadSettings(c.opts)
	if err != nil {
		return err
	}
	if _, err := server.NewRouter(s); err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "System check identified no issues (0 silenced).")
	return nil
}

type lambdaCommand struct {
	opts *options
}

func (c *lambdaCommand) Execute(args []string) error {
	s, err := loadSettings(c.opts)
	if err != nil {
		return err
	}
	router, err := server.NewRouter(s)
	if err != nil {
		return err
	}

	log.Info("Serving API Gateway proxy events")
	lambda.Start(lambdaproxy.NewHandler(router).Invoke)
	return nil
}
