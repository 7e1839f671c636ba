// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/artmark-inc/artmarkd/fault"
)

// Amount - a whole number quantity of one currency
type Amount struct {
	Quantity int64  `json:"quantity"`
	Symbol   Symbol `json:"symbol"`
}

// NewAmount - quantity of a symbol
func NewAmount(quantity int64, symbol Symbol) Amount {
	return Amount{
		Quantity: quantity,
		Symbol:   symbol,
	}
}

// AmountFromString - parse "<quantity> <symbol>" e.g. "11 ART"
func AmountFromString(s string) (Amount, error) {
	fields := strings.Fields(s)
	if 2 != len(fields) {
		return Amount{}, fault.InvalidSymbolName
	}
	quantity, err := strconv.ParseInt(fields[0], 10, 64)
	if nil != err {
		return Amount{}, fault.InvalidSymbolName
	}
	symbol, err := SymbolFromString(fields[1])
	if nil != err {
		return Amount{}, err
	}
	return NewAmount(quantity, symbol), nil
}

// String - "<quantity> <symbol>" rendering
func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Quantity, a.Symbol)
}

// IsValid - valid symbol and non-negative quantity
func (a Amount) IsValid() bool {
	return a.Symbol.IsValid() && a.Quantity >= 0
}
