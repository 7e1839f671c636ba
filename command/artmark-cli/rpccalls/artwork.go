// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/artmark-inc/artmarkd/rpc"
)

// MintArtwork - issue a master token plus one layer token per collaborator
func (client *Client) MintArtwork(to string, uri string, collaborators []string) (*rpc.ArtworkMintReply, error) {
	args := rpc.ArtworkMintArguments{
		To:            to,
		URI:           uri,
		Collaborators: collaborators,
	}
	var reply rpc.ArtworkMintReply
	if err := client.client.Call("Artwork.Mint", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetupArtwork - one-time lever configuration of a control token
func (client *Client) SetupArtwork(tokenId string, minValues []int64, maxValues []int64, currentValues []int64) (*rpc.ArtworkSetupReply, error) {
	args := rpc.ArtworkSetupArguments{
		TokenId:       tokenId,
		MinValues:     minValues,
		MaxValues:     maxValues,
		CurrentValues: currentValues,
	}
	var reply rpc.ArtworkSetupReply
	if err := client.client.Call("Artwork.Setup", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// UpdateArtwork - move levers on a control token
func (client *Client) UpdateArtwork(tokenId string, leverIds []uint64, newValues []int64) (*rpc.ArtworkUpdateReply, error) {
	args := rpc.ArtworkUpdateArguments{
		TokenId:   tokenId,
		LeverIds:  leverIds,
		NewValues: newValues,
	}
	var reply rpc.ArtworkUpdateReply
	if err := client.client.Call("Artwork.Update", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetArtworkStatus - read the control token state of an artwork token
func (client *Client) GetArtworkStatus(tokenId string) (*rpc.ArtworkStatusReply, error) {
	args := rpc.ArtworkStatusArguments{
		TokenId: tokenId,
	}
	var reply rpc.ArtworkStatusReply
	if err := client.client.Call("Artwork.Status", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetArtworkLayers - enumerate the layer tokens of a master token
func (client *Client) GetArtworkLayers(tokenId string) (*rpc.ArtworkLayersReply, error) {
	args := rpc.ArtworkLayersArguments{
		TokenId: tokenId,
	}
	var reply rpc.ArtworkLayersReply
	if err := client.client.Call("Artwork.Layers", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
