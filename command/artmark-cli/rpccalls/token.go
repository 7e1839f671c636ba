// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/artmark-inc/artmarkd/rpc"
)

// MintToken - issue one non-fungible token
func (client *Client) MintToken(to string, symbol string, uri string, memo string) (*rpc.TokenMintReply, error) {
	args := rpc.TokenMintArguments{
		To:     to,
		Symbol: symbol,
		URI:    uri,
		Memo:   memo,
	}
	var reply rpc.TokenMintReply
	if err := client.client.Call("Token.Mint", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// TransferToken - move a token to a new owner
func (client *Client) TransferToken(from string, to string, tokenId string, memo string) (*rpc.TokenTransferReply, error) {
	args := rpc.TokenTransferArguments{
		From:    from,
		To:      to,
		TokenId: tokenId,
		Memo:    memo,
	}
	var reply rpc.TokenTransferReply
	if err := client.client.Call("Token.Transfer", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// BurnToken - remove a token from circulation
func (client *Client) BurnToken(owner string, tokenId string, memo string) (*rpc.TokenBurnReply, error) {
	args := rpc.TokenBurnArguments{
		Owner:   owner,
		TokenId: tokenId,
		Memo:    memo,
	}
	var reply rpc.TokenBurnReply
	if err := client.client.Call("Token.Burn", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetTokenPayer - record the token owner as its storage payer
func (client *Client) SetTokenPayer(payer string, tokenId string) (*rpc.TokenSetPayerReply, error) {
	args := rpc.TokenSetPayerArguments{
		Payer:   payer,
		TokenId: tokenId,
	}
	var reply rpc.TokenSetPayerReply
	if err := client.client.Call("Token.SetPayer", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetToken - read one token record
func (client *Client) GetToken(tokenId string) (*rpc.TokenGetReply, error) {
	args := rpc.TokenGetArguments{
		TokenId: tokenId,
	}
	var reply rpc.TokenGetReply
	if err := client.client.Call("Token.Get", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// ListTokens - enumerate tokens by owner or by symbol
func (client *Client) ListTokens(owner string, symbol string) (*rpc.TokenListReply, error) {
	args := rpc.TokenListArguments{
		Owner:  owner,
		Symbol: symbol,
	}
	var reply rpc.TokenListReply
	if err := client.client.Call("Token.List", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
