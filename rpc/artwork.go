// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/artmark-inc/artmarkd/account"
	"github.com/artmark-inc/artmarkd/artwork"
	"github.com/artmark-inc/artmarkd/tokenid"
)

const (
	rateLimitArtwork = 200
	rateBurstArtwork = 100
)

// limit for collaborator lists
const maximumCollaborators = 100

// Artwork - type for the RPC
type Artwork struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Artwork *artwork.Artwork
}

func newArtwork(log *logger.L, handles Handles) *Artwork {
	return &Artwork{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitArtwork, rateBurstArtwork),
		Artwork: handles.Artwork,
	}
}

// ---

// ArtworkMintArguments - arguments for minting a layered artwork
type ArtworkMintArguments struct {
	To            string   `json:"to"`
	URI           string   `json:"uri"`
	Collaborators []string `json:"collaborators"`
}

// ArtworkMintReply - the master and layer token ids
type ArtworkMintReply struct {
	Master string   `json:"master"`
	Layers []string `json:"layers"`
}

// Mint - issue a master token plus one layer token per collaborator
func (a *Artwork) Mint(arguments *ArtworkMintArguments, reply *ArtworkMintReply) error {
	if err := rateLimitN(a.Limiter, 1+len(arguments.Collaborators), maximumCollaborators); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Artwork.Mint: %+v", arguments)

	to, err := account.NameFromString(arguments.To)
	if nil != err {
		return err
	}
	collaborators := make([]account.Name, len(arguments.Collaborators))
	for i, c := range arguments.Collaborators {
		collaborators[i], err = account.NameFromString(c)
		if nil != err {
			return err
		}
	}

	master, layers, err := a.Artwork.MintArtwork(to, arguments.URI, collaborators)
	if nil != err {
		return err
	}

	reply.Master = master.String()
	reply.Layers = make([]string, len(layers))
	for i, layer := range layers {
		reply.Layers[i] = layer.String()
	}
	return nil
}

// ---

// ArtworkSetupArguments - lever ranges and starting values for a layer
type ArtworkSetupArguments struct {
	TokenId       string  `json:"tokenId"`
	MinValues     []int64 `json:"minValues"`
	MaxValues     []int64 `json:"maxValues"`
	CurrentValues []int64 `json:"currentValues"`
}

// ArtworkSetupReply - number of levers configured
type ArtworkSetupReply struct {
	LeverCount int `json:"leverCount"`
}

// Setup - one-time lever configuration of a control token
func (a *Artwork) Setup(arguments *ArtworkSetupArguments, reply *ArtworkSetupReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Artwork.Setup: %+v", arguments)

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	err = a.Artwork.Setup(globalId, arguments.MinValues, arguments.MaxValues, arguments.CurrentValues)
	if nil != err {
		return err
	}

	reply.LeverCount = len(arguments.CurrentValues)
	return nil
}

// ---

// ArtworkUpdateArguments - new values for selected levers
type ArtworkUpdateArguments struct {
	TokenId   string   `json:"tokenId"`
	LeverIds  []uint64 `json:"leverIds"`
	NewValues []int64  `json:"newValues"`
}

// ArtworkUpdateReply - all lever values after the update
type ArtworkUpdateReply struct {
	CurrentValues []int64 `json:"currentValues"`
}

// Update - move levers on a control token
func (a *Artwork) Update(arguments *ArtworkUpdateArguments, reply *ArtworkUpdateReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	log := a.Log
	log.Infof("Artwork.Update: %+v", arguments)

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	err = a.Artwork.Update(globalId, arguments.LeverIds, arguments.NewValues)
	if nil != err {
		return err
	}

	control, err := a.Artwork.ControlTokenOf(globalId)
	if nil != err {
		return err
	}
	reply.CurrentValues = control.CurrentValues
	return nil
}

// ---

// ArtworkStatusArguments - control token identification
type ArtworkStatusArguments struct {
	TokenId string `json:"tokenId"`
}

// ArtworkStatusReply - the control token state of one artwork token
type ArtworkStatusReply struct {
	Master        string  `json:"master"`
	IsSetup       bool    `json:"isSetup"`
	MinValues     []int64 `json:"minValues"`
	MaxValues     []int64 `json:"maxValues"`
	CurrentValues []int64 `json:"currentValues"`
}

// Status - read the control token of an artwork token
func (a *Artwork) Status(arguments *ArtworkStatusArguments, reply *ArtworkStatusReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	control, err := a.Artwork.ControlTokenOf(globalId)
	if nil != err {
		return err
	}
	master, err := a.Artwork.MasterOf(globalId)
	if nil != err {
		return err
	}

	reply.Master = master.String()
	reply.IsSetup = control.IsSetup
	reply.MinValues = control.MinValues
	reply.MaxValues = control.MaxValues
	reply.CurrentValues = control.CurrentValues
	return nil
}

// ---

// ArtworkLayersArguments - a master token id
type ArtworkLayersArguments struct {
	TokenId string `json:"tokenId"`
}

// ArtworkLayersReply - all layer token ids anchored on the master
type ArtworkLayersReply struct {
	Layers []string `json:"layers"`
}

// Layers - enumerate the layer tokens of a master token
func (a *Artwork) Layers(arguments *ArtworkLayersArguments, reply *ArtworkLayersReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	globalId, err := tokenid.GlobalIdFromString(arguments.TokenId)
	if nil != err {
		return err
	}

	layers, err := a.Artwork.LayersOf(globalId)
	if nil != err {
		return err
	}

	reply.Layers = make([]string, len(layers))
	for i, layer := range layers {
		reply.Layers[i] = layer.String()
	}
	return nil
}
