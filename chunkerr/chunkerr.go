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

// Package chunkerr defines the fatal error taxonomy shared by chunk,
// packet, chunkqueue and chunkbuffer.
//
// SoftFailure is deliberately not an error type here: per the peek
// contract, an incomplete or improperly-represented result is encoded in
// the returned chunk's Flags, never as a returned error.
package chunkerr

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Kind classifies a fatal error.
type Kind string

const (
	// KindProgramming marks a caller misuse: mutating an immutable chunk,
	// prepending with a non-zero front iterator, a negative length other
	// than the ToEnd sentinel, an out-of-range offset.
	KindProgramming Kind = "programming"

	// KindUnsupported marks an operation the variant does not implement:
	// deserializing a SliceChunk/SequenceChunk, or serializing a
	// FieldsChunk whose invariants are not satisfied.
	KindUnsupported Kind = "unsupported"
)

// Error wraps a Kind with a message, produced via github.com/pkg/errors so
// stack traces survive across package boundaries the way packetd's errors
// do.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error with the same Kind, so callers
// can `errors.Is(err, chunkerr.Programming("", ""))`-style checks or,
// more usefully, `var ce *chunkerr.Error; errors.As(err, &ce)`.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

// Programming builds a ProgrammingError. component is a short prefix such
// as "chunk" or "packet" naming the offending package, matching packetd's
// own "layer4/stream: ..." message style.
func Programming(component, format string, args ...any) *Error {
	return newError(KindProgramming, component+": "+format, args...)
}

// Unsupported builds an UnsupportedOperation error.
func Unsupported(component, format string, args ...any) *Error {
	return newError(KindUnsupported, component+": "+format, args...)
}

// IsProgramming reports whether err is a ProgrammingError.
func IsProgramming(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindProgramming
}

// IsUnsupported reports whether err is an UnsupportedOperation error.
func IsUnsupported(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindUnsupported
}

// Aggregate combines multiple invariant failures (e.g. several unmet
// FieldsChunk invariants) into a single UnsupportedOperation, using
// hashicorp/go-multierror so every cause survives instead of only the
// first one.
func Aggregate(component string, causes ...error) error {
	var merr *multierror.Error
	for _, c := range causes {
		if c != nil {
			merr = multierror.Append(merr, c)
		}
	}
	if merr == nil || len(merr.Errors) == 0 {
		return nil
	}
	if len(merr.Errors) == 1 {
		return Unsupported(component, "%s", merr.Errors[0].Error())
	}
	return newError(KindUnsupported, "%s: %s", component, merr.Error())
}
