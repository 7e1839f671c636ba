// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "artmark-cli"
	app.Usage = "connect to an artmarkd to manage currencies, tokens, artworks and auctions"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2150",
			Usage: " artmarkd host/IP and port, `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display daemon version and uptime",
			Action: runInfo,
		},
		{
			Name:      "create-currency",
			Usage:     "register a new currency symbol",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "issuer, i",
					Usage: "*issuer account `NAME`",
				},
				cli.StringFlag{
					Name:  "maximum-supply, m",
					Usage: "*maximum supply `\"QUANTITY SYMBOL\"`, zero quantity for infinite",
				},
				cli.BoolFlag{
					Name:  "non-fungible, n",
					Usage: " currency units are mintable as tokens",
				},
			},
			Action: runCreateCurrency,
		},
		{
			Name:      "currency",
			Usage:     "show the supply record of a currency",
			ArgsUsage: "SYMBOL",
			Action:    runCurrencyStatus,
		},
		{
			Name:      "balance",
			Usage:     "show the balance of an account",
			ArgsUsage: "NAME SYMBOL",
			Action:    runBalance,
		},
		{
			Name:      "audit",
			Usage:     "verify supply conservation for a currency",
			ArgsUsage: "SYMBOL",
			Action:    runAudit,
		},
		{
			Name:      "mint",
			Usage:     "issue a single non-fungible token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Usage: "*initial owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "symbol, s",
					Usage: "*currency `SYMBOL` the token belongs to",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Usage: "*token metadata `URI`",
				},
				cli.StringFlag{
					Name:  "memo, m",
					Usage: " memo `TEXT`",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "move a token to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Usage: "*current owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Usage: "*new owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
				cli.StringFlag{
					Name:  "memo, m",
					Usage: " memo `TEXT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "burn",
			Usage:     "remove a token from circulation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Usage: "*owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
				cli.StringFlag{
					Name:  "memo, m",
					Usage: " memo `TEXT`",
				},
			},
			Action: runBurn,
		},
		{
			Name:      "set-payer",
			Usage:     "record the token owner as its storage payer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payer, p",
					Usage: "*payer account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
			},
			Action: runSetPayer,
		},
		{
			Name:      "token",
			Usage:     "show one token record",
			ArgsUsage: "ID",
			Action:    runToken,
		},
		{
			Name:      "list",
			Usage:     "list tokens by owner or by symbol",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Usage: "+owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "symbol, s",
					Usage: "+currency `SYMBOL`",
				},
			},
			Action: runList,
		},
		{
			Name:      "mint-artwork",
			Usage:     "issue a master token plus one layer token per collaborator",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Usage: "*artist account `NAME`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Usage: "*ipfs hash of the artwork",
				},
				cli.StringSliceFlag{
					Name:  "collaborator, l",
					Usage: " collaborator account `NAME`, repeat for each layer",
				},
			},
			Action: runMintArtwork,
		},
		{
			Name:      "setup",
			Usage:     "one-time lever configuration of a layer token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*layer token `ID`",
				},
				cli.StringFlag{
					Name:  "minimum, n",
					Usage: "*comma separated minimum lever `VALUES`",
				},
				cli.StringFlag{
					Name:  "maximum, x",
					Usage: "*comma separated maximum lever `VALUES`",
				},
				cli.StringFlag{
					Name:  "current, c",
					Usage: "*comma separated starting lever `VALUES`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "update",
			Usage:     "move levers on a layer token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*layer token `ID`",
				},
				cli.StringFlag{
					Name:  "levers, l",
					Usage: "*comma separated lever `IDS`",
				},
				cli.StringFlag{
					Name:  "values, n",
					Usage: "*comma separated new `VALUES`",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "artwork",
			Usage:     "show the control token state of an artwork token",
			ArgsUsage: "ID",
			Action:    runArtworkStatus,
		},
		{
			Name:      "layers",
			Usage:     "list the layer tokens of a master token",
			ArgsUsage: "ID",
			Action:    runLayers,
		},
		{
			Name:      "open-auction",
			Usage:     "put a token up for auction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Usage: "*owner account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Usage: "*minimum price `\"QUANTITY SYMBOL\"`",
				},
				cli.Int64Flag{
					Name:  "duration, d",
					Usage: "*auction length in `SECONDS`",
				},
			},
			Action: runOpenAuction,
		},
		{
			Name:      "bid",
			Usage:     "place a bid on an open auction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bidder, b",
					Usage: "*bidder account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Usage: "*bid price `\"QUANTITY SYMBOL\"`",
				},
			},
			Action: runBid,
		},
		{
			Name:      "accept",
			Usage:     "owner accepts the current top bid",
			ArgsUsage: "ID",
			Action:    runAccept,
		},
		{
			Name:      "finalize",
			Usage:     "top bidder settles an expired auction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bidder, b",
					Usage: "*bidder account `NAME`",
				},
				cli.StringFlag{
					Name:  "token, k",
					Usage: "*token `ID`",
				},
			},
			Action: runFinalize,
		},
		{
			Name:      "pay",
			Usage:     "notify the daemon of an incoming currency transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payer, p",
					Usage: "*paying account `NAME`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Usage: "*receiving account `NAME`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Usage: "*payment `\"QUANTITY SYMBOL\"`",
				},
				cli.StringFlag{
					Name:  "memo, m",
					Usage: " memo `TEXT`, \"bid:ID\" routes to an auction",
				},
			},
			Action: runPay,
		},
		{
			Name:      "auction",
			Usage:     "show the auction record of a token",
			ArgsUsage: "ID",
			Action:    runAuctionStatus,
		},
		{
			Name:      "credits",
			Usage:     "show the bid qualification of an account",
			ArgsUsage: "NAME",
			Action:    runCredits,
		},
		{
			Name:   "purge-auctions",
			Usage:  "operator removal of all auction records",
			Action: runPurge,
		},
	}

	app.Before = func(c *cli.Context) error {
		app.Metadata = map[string]interface{}{
			"config": &metadata{
				connect: c.GlobalString("connect"),
				verbose: c.GlobalBool("verbose"),
				e:       app.ErrWriter,
				w:       app.Writer,
			},
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
