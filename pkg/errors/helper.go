// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"strings"

	"github.com/pingcap/errors"
)

var (
	// New is an alias of errors.New in pingcap/errors
	New = errors.New
	// Trace is an alias of errors.Trace in pingcap/errors
	Trace = errors.Trace
	// As is an alias of errors.As in the standard library
	As = stderrors.As
)

// Is reports whether any error in err's chain matches target. A normalized
// target also matches any error carrying its RFC code.
func Is(err, target error) bool {
	if stderrors.Is(err, target) {
		return true
	}
	if rfcErr, ok := target.(*errors.Error); ok {
		return HasRFCCode(err, rfcErr)
	}
	return false
}

// WrapError generates a new error based on given `*errors.Error`, wraps the err
// as cause error.
// If given `err` is nil, returns a nil error, which a the different behavior
// against `Wrap` function in pingcap/errors.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByCause(args...)
}

// HasRFCCode checks whether err carries the RFC code of rfcError anywhere in
// its message. Wrapping keeps the code of the outermost normalized error, so
// this also matches errors produced by `Wrap` and `WrapError`.
func HasRFCCode(err error, rfcError *errors.Error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), string(rfcError.RFCCode()))
}
