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

// Package config loads the small settings surface pktchunkctl needs
// (the module's default fill byte and its log level) from a YAML file,
// wrapping github.com/elastic/go-ucfg the same way the teacher's
// confengine package did.
package config

import (
	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"

	"github.com/pktchunk/pktchunk/common"
)

// Settings is the top-level shape config files for this module take.
type Settings struct {
	FillByte byte   `config:"fillByte"`
	LogLevel string `config:"logLevel"`
}

// Default returns the settings pktchunkctl falls back to when no config
// file is given.
func Default() Settings {
	return Settings{FillByte: common.DefaultFillByte, LogLevel: "info"}
}

// Config wraps a ucfg.Config, a narrowed form of the layer
// confengine.Config provided: Has for probing a path, Unpack for
// decoding into a typed struct.
type Config struct {
	conf *ucfg.Config
}

func wrap(conf *ucfg.Config) *Config {
	return &Config{conf: conf}
}

func (c *Config) Has(path string) bool {
	ok, err := c.conf.Has(path, -1)
	return err == nil && ok
}

func (c *Config) Unpack(to any) error {
	return c.conf.Unpack(to)
}

// LoadPath reads settings from a YAML file at path, starting from
// Default and overriding whatever the file specifies.
func LoadPath(path string) (Settings, error) {
	conf, err := yaml.NewConfigWithFile(path, ucfg.PathSep("."))
	if err != nil {
		return Settings{}, err
	}
	return unpackOverDefault(wrap(conf))
}

// LoadContent is LoadPath for an in-memory YAML document, used by tests
// and by pktchunkctl's --config-inline flag.
func LoadContent(b []byte) (Settings, error) {
	conf, err := yaml.NewConfig(b)
	if err != nil {
		return Settings{}, err
	}
	return unpackOverDefault(wrap(conf))
}

func unpackOverDefault(c *Config) (Settings, error) {
	s := Default()
	if err := c.Unpack(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyOptions overlays CLI-supplied --set assignments onto s, one
// field at a time, following the same "coerce, fall back to the
// existing value on error" pattern packetd's protocol decoders use for
// common.Options (see phttp.NewDecoder's enableBody/maxBodySize
// handling). Keys that don't parse or aren't present are left alone, so
// --set is additive over whatever LoadPath/Default already produced.
func ApplyOptions(s Settings, opts common.Options) Settings {
	if fillByte, err := opts.GetInt("fillByte"); err == nil {
		s.FillByte = byte(fillByte)
	}
	if logLevel, ok := opts["logLevel"].(string); ok {
		s.LogLevel = logLevel
	}
	return s
}
