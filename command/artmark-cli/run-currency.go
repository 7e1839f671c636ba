// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/artmark-inc/artmarkd/currency"
)

func runCreateCurrency(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	issuer, err := requiredFlag(c, "issuer")
	if nil != err {
		return err
	}
	maximumSupply, err := requiredFlag(c, "maximum-supply")
	if nil != err {
		return err
	}
	tokenType := uint64(currency.Fungible)
	if c.Bool("non-fungible") {
		tokenType = uint64(currency.NonFungible)
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.CreateCurrency(issuer, maximumSupply, tokenType)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runCurrencyStatus(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	symbol, err := requiredArgument(c, "symbol")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetCurrencyStatus(symbol)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner := c.Args().Get(0)
	symbol := c.Args().Get(1)
	if "" == owner || "" == symbol {
		return cli.NewExitError("usage: balance NAME SYMBOL", 1)
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetBalance(owner, symbol)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runAudit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	symbol, err := requiredArgument(c, "symbol")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.AuditCurrency(symbol)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
