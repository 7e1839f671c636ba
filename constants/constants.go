// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constants - values common across all packages
package constants

// MaximumMemoLength - longest memo accepted on mint, transfer and burn
const MaximumMemoLength = 256

// default currency symbols, overridable from the configuration file
const (
	ArtSymbol           = "ART" // layered artwork tokens
	BidSymbol           = "EOS" // auction settlement currency
	QualificationSymbol = "PDH" // bid qualification currency
)

// MinimumQualifyingAmount - a qualification payment must exceed this
// many units of the qualification currency to earn one bid credit
const MinimumQualifyingAmount = 10
