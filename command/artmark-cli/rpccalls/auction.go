// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/artmark-inc/artmarkd/rpc"
)

// OpenAuction - put a token up for auction
func (client *Client) OpenAuction(owner string, tokenId string, minimumPrice string, duration int64) (*rpc.AuctionOpenReply, error) {
	args := rpc.AuctionOpenArguments{
		Owner:        owner,
		TokenId:      tokenId,
		MinimumPrice: minimumPrice,
		Duration:     duration,
	}
	var reply rpc.AuctionOpenReply
	if err := client.client.Call("Auction.Open", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// PlaceBid - place a bid on an open auction
func (client *Client) PlaceBid(bidder string, tokenId string, price string) (*rpc.AuctionBidReply, error) {
	args := rpc.AuctionBidArguments{
		Bidder:  bidder,
		TokenId: tokenId,
		Price:   price,
	}
	var reply rpc.AuctionBidReply
	if err := client.client.Call("Auction.Bid", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// AcceptBid - the owner accepts the current top bid
func (client *Client) AcceptBid(tokenId string) (*rpc.AuctionAcceptReply, error) {
	args := rpc.AuctionAcceptArguments{
		TokenId: tokenId,
	}
	var reply rpc.AuctionAcceptReply
	if err := client.client.Call("Auction.Accept", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// FinalizeAuction - the top bidder settles an expired auction
func (client *Client) FinalizeAuction(bidder string, tokenId string) (*rpc.AuctionFinalizeReply, error) {
	args := rpc.AuctionFinalizeArguments{
		Bidder:  bidder,
		TokenId: tokenId,
	}
	var reply rpc.AuctionFinalizeReply
	if err := client.client.Call("Auction.Finalize", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SendPayment - notify the daemon of an incoming currency transfer
func (client *Client) SendPayment(payer string, to string, amount string, memo string) (*rpc.AuctionPaymentReply, error) {
	args := rpc.AuctionPaymentArguments{
		Payer:  payer,
		To:     to,
		Amount: amount,
		Memo:   memo,
	}
	var reply rpc.AuctionPaymentReply
	if err := client.client.Call("Auction.Payment", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetAuctionStatus - read the auction record of a token
func (client *Client) GetAuctionStatus(tokenId string) (*rpc.AuctionStatusReply, error) {
	args := rpc.AuctionStatusArguments{
		TokenId: tokenId,
	}
	var reply rpc.AuctionStatusReply
	if err := client.client.Call("Auction.Status", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetCredits - read the bid qualification of an account
func (client *Client) GetCredits(bidder string) (*rpc.AuctionCreditsReply, error) {
	args := rpc.AuctionCreditsArguments{
		Bidder: bidder,
	}
	var reply rpc.AuctionCreditsReply
	if err := client.client.Call("Auction.Credits", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// PurgeAuctions - operator removal of all auction records
func (client *Client) PurgeAuctions() (*rpc.AuctionPurgeReply, error) {
	args := rpc.AuctionPurgeArguments{}
	var reply rpc.AuctionPurgeReply
	if err := client.client.Call("Auction.Purge", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
