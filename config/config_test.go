// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pktchunk/pktchunk/common"
)

func TestLoadContentOverridesDefault(t *testing.T) {
	s, err := LoadContent([]byte("logLevel: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, Default().FillByte, s.FillByte)
}

func TestLoadContentEmptyYieldsDefault(t *testing.T) {
	s, err := LoadContent([]byte("{}\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestApplyOptionsOverridesFillByteAndLogLevel(t *testing.T) {
	opts := common.ParseAssignments([]string{"fillByte=7", "logLevel=debug"})
	s := ApplyOptions(Default(), opts)
	assert.EqualValues(t, 7, s.FillByte)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestApplyOptionsLeavesUnrecognizedKeysAlone(t *testing.T) {
	opts := common.ParseAssignments([]string{"fillByte=not-a-number"})
	s := ApplyOptions(Default(), opts)
	assert.Equal(t, Default(), s, "an unparseable override must not disturb the default")
}
