// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runOpenAuction(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredFlag(c, "owner")
	if nil != err {
		return err
	}
	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}
	price, err := requiredFlag(c, "price")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.OpenAuction(owner, tokenId, price, c.Int64("duration"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runBid(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bidder, err := requiredFlag(c, "bidder")
	if nil != err {
		return err
	}
	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}
	price, err := requiredFlag(c, "price")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.PlaceBid(bidder, tokenId, price)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runAccept(c *cli.Context) error {
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

	reply, err := client.AcceptBid(tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runFinalize(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bidder, err := requiredFlag(c, "bidder")
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

	reply, err := client.FinalizeAuction(bidder, tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runPay(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	payer, err := requiredFlag(c, "payer")
	if nil != err {
		return err
	}
	to, err := requiredFlag(c, "to")
	if nil != err {
		return err
	}
	amount, err := requiredFlag(c, "amount")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.SendPayment(payer, to, amount, c.String("memo"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runAuctionStatus(c *cli.Context) error {
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

	reply, err := client.GetAuctionStatus(tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runCredits(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bidder, err := requiredArgument(c, "account")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetCredits(bidder)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runPurge(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.PurgeAuctions()
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
