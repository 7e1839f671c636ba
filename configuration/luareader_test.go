// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmark-inc/artmarkd/configuration"
)

type testConfiguration struct {
	DataDirectory string   `gluamapper:"data_directory"`
	Nodes         []string `gluamapper:"nodes"`
	Limit         int      `gluamapper:"limit"`
}

const testScript = `
local M = {}
M.data_directory = arg[0] .. ".d"
M.nodes = {
    "127.0.0.1:2130",
    "[::1]:2130",
}
M.limit = 10
return M
`

func TestParseConfigurationFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "configuration")
	assert.Nil(t, err, "tempdir error")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(testScript), 0600)
	assert.Nil(t, err, "write error")

	var config testConfiguration
	err = configuration.ParseConfigurationFile(fileName, &config)
	assert.Nil(t, err, "parse error")

	assert.Equal(t, fileName+".d", config.DataDirectory, "wrong data directory")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, config.Nodes, "wrong nodes")
	assert.Equal(t, 10, config.Limit, "wrong limit")
}

func TestParseMissingFile(t *testing.T) {
	var config testConfiguration
	err := configuration.ParseConfigurationFile("/nonexistent/test.conf", &config)
	assert.NotNil(t, err, "expected error")
}
