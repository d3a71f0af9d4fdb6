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

package chunk

// Flags carries the four orthogonal status bits every chunk has. Each
// field is named so its zero value is the "good" state a freshly
// constructed chunk starts in: mutable, complete, correct, properly
// represented.
type Flags struct {
	// Immutable is one-way: once true, it never goes back to false.
	Immutable bool
	// Incomplete marks a fragment of a larger logical chunk.
	Incomplete bool
	// Incorrect marks bit-error-corrupted data.
	Incorrect bool
	// Improper marks a FieldsChunk deserialized from bytes that do not
	// satisfy its schema. Meaningless for the other kinds.
	Improper bool
}

func (f Flags) Mutable() bool              { return !f.Immutable }
func (f Flags) Complete() bool             { return !f.Incomplete }
func (f Flags) Correct() bool              { return !f.Incorrect }
func (f Flags) ProperlyRepresented() bool  { return !f.Improper }

// MarkIncomplete returns a copy of f with Incomplete set.
func (f Flags) MarkIncomplete() Flags {
	f.Incomplete = true
	return f
}

// MarkIncorrect returns a copy of f with Incorrect set.
func (f Flags) MarkIncorrect() Flags {
	f.Incorrect = true
	return f
}

// MarkImproper returns a copy of f with Improper set.
func (f Flags) MarkImproper() Flags {
	f.Improper = true
	return f
}

// Merge combines the flags of two chunks being concatenated or otherwise
// combined into one logical result: the result is immutable only if both
// inputs are, and takes on the worst case of every failure flag.
func (f Flags) Merge(g Flags) Flags {
	return Flags{
		Immutable: f.Immutable && g.Immutable,
		Incomplete: f.Incomplete || g.Incomplete,
		Incorrect:  f.Incorrect || g.Incorrect,
		Improper:   f.Improper || g.Improper,
	}
}
