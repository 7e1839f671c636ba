// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runMint(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredFlag(c, "owner")
	if nil != err {
		return err
	}
	symbol, err := requiredFlag(c, "symbol")
	if nil != err {
		return err
	}
	uri, err := requiredFlag(c, "uri")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.MintToken(owner, symbol, uri, c.String("memo"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runTransfer(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	from, err := requiredFlag(c, "from")
	if nil != err {
		return err
	}
	to, err := requiredFlag(c, "to")
	if nil != err {
		return err
	}
	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.TransferToken(from, to, tokenId, c.String("memo"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runBurn(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredFlag(c, "owner")
	if nil != err {
		return err
	}
	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.BurnToken(owner, tokenId, c.String("memo"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runSetPayer(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	payer, err := requiredFlag(c, "payer")
	if nil != err {
		return err
	}
	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.SetTokenPayer(payer, tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runToken(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	tokenId, err := requiredArgument(c, "token id")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetToken(tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.ListTokens(c.String("owner"), c.String("symbol"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
