// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runMintArtwork(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := requiredFlag(c, "owner")
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

	reply, err := client.MintArtwork(owner, uri, c.StringSlice("collaborator"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runSetup(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}
	minValues, err := parseInt64List(c.String("minimum"))
	if nil != err {
		return err
	}
	maxValues, err := parseInt64List(c.String("maximum"))
	if nil != err {
		return err
	}
	currentValues, err := parseInt64List(c.String("current"))
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.SetupArtwork(tokenId, minValues, maxValues, currentValues)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runUpdate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	tokenId, err := requiredFlag(c, "token")
	if nil != err {
		return err
	}
	leverIds, err := parseUint64List(c.String("levers"))
	if nil != err {
		return err
	}
	newValues, err := parseInt64List(c.String("values"))
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.UpdateArtwork(tokenId, leverIds, newValues)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runArtworkStatus(c *cli.Context) error {
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

	reply, err := client.GetArtworkStatus(tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runLayers(c *cli.Context) error {
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

	reply, err := client.GetArtworkLayers(tokenId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
