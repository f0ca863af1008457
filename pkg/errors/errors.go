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
	"github.com/pingcap/errors"
)

// all fleet manager errors
var (
	// general errors
	ErrUnknown = errors.Normalize(
		"unknown error",
		errors.RFCCodeText("SE:ErrUnknown"),
	)
	ErrInvalidArgument = errors.Normalize(
		"invalid argument: %s",
		errors.RFCCodeText("SE:ErrInvalidArgument"),
	)
	ErrInvalidCliParameter = errors.Normalize(
		"invalid cli parameter: %s",
		errors.RFCCodeText("SE:ErrInvalidCliParameter"),
	)

	// config related errors
	ErrConfigDecodeFile = errors.Normalize(
		"decode config file failed",
		errors.RFCCodeText("SE:ErrConfigDecodeFile"),
	)
	ErrConfigUnknownItem = errors.Normalize(
		"config contains unknown configuration options: %s",
		errors.RFCCodeText("SE:ErrConfigUnknownItem"),
	)
	ErrConfigInvalid = errors.Normalize(
		"config is invalid: %s",
		errors.RFCCodeText("SE:ErrConfigInvalid"),
	)

	// meta related errors
	ErrMetaNewClientFail = errors.Normalize(
		"create meta client fail",
		errors.RFCCodeText("SE:ErrMetaNewClientFail"),
	)
	ErrMetaOpFail = errors.Normalize(
		"meta operation fail",
		errors.RFCCodeText("SE:ErrMetaOpFail"),
	)
	ErrMetaEntryNotFound = errors.Normalize(
		"meta entry not found",
		errors.RFCCodeText("SE:ErrMetaEntryNotFound"),
	)
	ErrMetaParamsInvalid = errors.Normalize(
		"meta params invalid:%s",
		errors.RFCCodeText("SE:ErrMetaParamsInvalid"),
	)
	ErrMetaClientTypeNotSupport = errors.Normalize(
		"meta client type not support:%s",
		errors.RFCCodeText("SE:ErrMetaClientTypeNotSupport"),
	)

	// query related errors
	ErrInvalidPagination = errors.Normalize(
		"invalid pagination: %s",
		errors.RFCCodeText("SE:ErrInvalidPagination"),
	)

	// processor related errors
	ErrProcessorAlreadyExists = errors.Normalize(
		"processor %s already exists in bridge %s",
		errors.RFCCodeText("SE:ErrProcessorAlreadyExists"),
	)
	ErrBridgeAlreadyExists = errors.Normalize(
		"bridge %s already exists",
		errors.RFCCodeText("SE:ErrBridgeAlreadyExists"),
	)
)
