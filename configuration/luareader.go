// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the configuration file
//
// the configuration file is actually a Lua script which is executed
// and its result table mapped onto a Go structure, fields are matched
// by their "gluamapper" struct tags
package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/artmark-inc/artmarkd/fault"
)

// ParseConfigurationFile - execute a Lua script and map the table it
// returns onto a configuration structure
//
// the script sees a global "arg" table with arg[0] set to its own
// file name so relative paths can be derived from the file location
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(fileName); nil != err {
		return err
	}

	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.InvalidStructure
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string { return s },
			TagName:  "gluamapper",
		},
	}
	return mapper.Map(table, config)
}
