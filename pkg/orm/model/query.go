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

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/smartevents/fleet-manager/pkg/errors"
)

const (
	// DefaultPageSize is the page size used when none is given.
	DefaultPageSize = 100
	// MaxPageSize is the largest page size a query accepts.
	MaxPageSize = 100
)

// QueryProcessorResourceInfo carries the pagination and filter of a processor
// listing. Page is zero based.
type QueryProcessorResourceInfo struct {
	Page   int             `json:"page"`
	Size   int             `json:"size"`
	Filter ProcessorFilter `json:"-"`
}

// NewQueryProcessorResourceInfo creates a QueryProcessorResourceInfo.
func NewQueryProcessorResourceInfo(page, size int, filter ProcessorFilter) QueryProcessorResourceInfo {
	return QueryProcessorResourceInfo{
		Page:   page,
		Size:   size,
		Filter: filter,
	}
}

// Validate checks the pagination bounds.
func (q QueryProcessorResourceInfo) Validate() error {
	err := validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.Size, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
	)
	if err != nil {
		return errors.ErrInvalidPagination.GenWithStackByArgs(err.Error())
	}
	return nil
}

// Offset returns the number of records skipped before the page. Call it only
// for a page which is not past the last one, see PastLastPage.
func (q QueryProcessorResourceInfo) Offset() int {
	return q.Page * q.Size
}

// PastLastPage reports whether the page starts after the last of total
// records. It never multiplies the page, so huge pages do not overflow.
func (q QueryProcessorResourceInfo) PastLastPage(total int64) bool {
	size := int64(q.Size)
	return int64(q.Page) >= (total+size-1)/size
}

// ListResult is a page of a listing.
// Size is the number of items in this page, Total counts every matching
// record regardless of pagination.
type ListResult[T any] struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// NewListResult creates a ListResult for items found on page.
func NewListResult[T any](items []T, page int, total int64) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{
		Page:  page,
		Size:  len(items),
		Total: total,
		Items: items,
	}
}
