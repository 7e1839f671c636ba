// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
