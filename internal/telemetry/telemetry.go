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

// Package telemetry holds the two process-wide counters the serializer
// registry is required to maintain: total bits serialized and total bits
// deserialized. Counters are prometheus counters registered through
// promauto, the same pattern packetd uses for its panic counter.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pktchunk/pktchunk/common"
)

var (
	serializedBitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "serialized_bits_total",
			Help:      "total number of bits written through registered ChunkSerializers",
		},
	)

	deserializedBitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "deserialized_bits_total",
			Help:      "total number of bits read through registered ChunkSerializers",
		},
	)
)

// AddSerialized increments the serialized-bits counter. Called once per
// ChunkSerializer.Serialize invocation with the number of bits actually
// written.
func AddSerialized(bits int64) {
	if bits <= 0 {
		return
	}
	serializedBitsTotal.Add(float64(bits))
}

// AddDeserialized increments the deserialized-bits counter.
func AddDeserialized(bits int64) {
	if bits <= 0 {
		return
	}
	deserializedBitsTotal.Add(float64(bits))
}
