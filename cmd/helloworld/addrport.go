// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	defaultAddr = "127.0.0.1"
	defaultPort = 8000
)

// ParseAddrPort parses the runserver argument: empty, "PORT", ":PORT",
// "ADDR:PORT" or "[IPv6]:PORT".
func ParseAddrPort(addrport string) (string, int, error) {
	if addrport == "" {
		return defaultAddr, defaultPort, nil
	}

	host, portStr := "", addrport
	if strings.Contains(addrport, ":") {
		var err error
		host, portStr, err = net.SplitHostPort(addrport)
		if err != nil {
			return "", 0, invalidAddrPort(addrport)
		}
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, invalidAddrPort(addrport)
	}

	if host == "" {
		host = defaultAddr
	} else if net.ParseIP(host) == nil && !validHostname(host) {
		return "", 0, fmt.Errorf("%q is not a valid IPv4/IPv6 address or hostname", host)
	}
	return host, port, nil
}

func invalidAddrPort(addrport string) error {
	return fmt.Errorf("%q is not a valid port number or address:port pair", addrport)
}

func validHostname(host string) bool {
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		for _, r := range label {
			if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return false
			}
		}
	}
	return true
}
