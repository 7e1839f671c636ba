// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/artmark-inc/artmarkd/rpc"
)

// CreateCurrency - register a new currency symbol
func (client *Client) CreateCurrency(issuer string, maximumSupply string, tokenType uint64) (*rpc.CurrencyCreateReply, error) {
	args := rpc.CurrencyCreateArguments{
		Issuer:        issuer,
		MaximumSupply: maximumSupply,
		TokenType:     tokenType,
	}
	var reply rpc.CurrencyCreateReply
	if err := client.client.Call("Currency.Create", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetCurrencyStatus - read the supply record of a currency
func (client *Client) GetCurrencyStatus(symbol string) (*rpc.CurrencyStatusReply, error) {
	args := rpc.CurrencyStatusArguments{
		Symbol: symbol,
	}
	var reply rpc.CurrencyStatusReply
	if err := client.client.Call("Currency.Status", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetBalance - read the balance of an account for one currency
func (client *Client) GetBalance(owner string, symbol string) (*rpc.CurrencyBalanceReply, error) {
	args := rpc.CurrencyBalanceArguments{
		Owner:  owner,
		Symbol: symbol,
	}
	var reply rpc.CurrencyBalanceReply
	if err := client.client.Call("Currency.Balance", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// AuditCurrency - verify supply conservation for one currency
func (client *Client) AuditCurrency(symbol string) (*rpc.CurrencyAuditReply, error) {
	args := rpc.CurrencyAuditArguments{
		Symbol: symbol,
	}
	var reply rpc.CurrencyAuditReply
	if err := client.client.Call("Currency.Audit", args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
