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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pktchunk/pktchunk/chunk"
	"github.com/pktchunk/pktchunk/common"
	"github.com/pktchunk/pktchunk/config"
	"github.com/pktchunk/pktchunk/logger"
	"github.com/pktchunk/pktchunk/packet"
	"github.com/pktchunk/pktchunk/protocol/pdemo"
)

var demoSomeData int32

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a Packet with a pdemo.ApplicationHeader, then pop it back off",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Default()
		if configInline != "" {
			loaded, err := config.LoadContent([]byte(configInline))
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load inline config: %v\n", err)
				os.Exit(1)
			}
			settings = loaded
		} else if configPath != "" {
			loaded, err := config.LoadPath(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
				os.Exit(1)
			}
			settings = loaded
		}

		opts := common.ParseAssignments(setOptions)
		settings = config.ApplyOptions(settings, opts)
		logger.SetLoggerLevel(settings.LogLevel)

		// --set someData=N overrides the --some-data flag; --set
		// quiet=true suppresses the digest line. Both fall back to
		// their existing value on a coercion error, the same pattern
		// config.ApplyOptions uses for fillByte.
		if someData, err := opts.GetInt("someData"); err == nil {
			demoSomeData = int32(someData)
		}
		quiet, _ := opts.GetBool("quiet")

		hdr := pdemo.NewApplicationHeaderChunk(&pdemo.ApplicationHeader{SomeData: demoSomeData})

		p := packet.New()
		p.PushHeader(hdr)
		logger.Infof("pktchunkctl: packet %s built, length=%d bits", p.ID(), p.GetPacketLength())

		got, ok := packet.PopHeaderAs[*pdemo.ApplicationHeader](p, hdr.Len())
		if !ok {
			fmt.Fprintln(os.Stderr, "failed to pop ApplicationHeader back off")
			os.Exit(1)
		}

		if quiet {
			fmt.Printf("someData=%d headerPop=%d\n", got.SomeData, p.GetHeaderPopOffset())
			return
		}

		digest, err := chunk.Digest(hdr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to digest header: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("someData=%d headerPop=%d digest=%x\n", got.SomeData, p.GetHeaderPopOffset(), digest)
	},
}

func init() {
	demoCmd.Flags().Int32Var(&demoSomeData, "some-data", 42, "value to carry in the demo ApplicationHeader")
	rootCmd.AddCommand(demoCmd)
}
