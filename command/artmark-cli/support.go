// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/artmark-inc/artmarkd/command/artmark-cli/rpccalls"
)

// open an RPC connection using the global options
func getClient(c *cli.Context) (*rpccalls.Client, error) {
	m := c.App.Metadata["config"].(*metadata)
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

// fetch a required flag or fail
func requiredFlag(c *cli.Context, name string) (string, error) {
	value := c.String(name)
	if "" == value {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return value, nil
}

// fetch a single required positional argument or fail
func requiredArgument(c *cli.Context, name string) (string, error) {
	value := c.Args().Get(0)
	if "" == value {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return value, nil
}

// parse a comma separated list of signed values
func parseInt64List(s string) ([]int64, error) {
	if "" == s {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if nil != err {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// parse a comma separated list of unsigned values
func parseUint64List(s string) ([]uint64, error) {
	if "" == s {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	values := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if nil != err {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
