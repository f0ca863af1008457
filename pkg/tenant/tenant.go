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

package tenant

type (
	// CustomerID is the identifier of the customer owning a bridge
	CustomerID = string
	// OrganisationID is the identifier of the customer's organisation
	OrganisationID = string
)

// CustomerInfo is the tenant scope of a request. Every listing and point
// lookup of a processor is scoped to the customer owning its bridge.
type CustomerInfo struct {
	customerID     CustomerID
	organisationID OrganisationID
}

// NewCustomerInfo returns an immutable CustomerInfo
func NewCustomerInfo(customerID CustomerID, organisationID OrganisationID) CustomerInfo {
	return CustomerInfo{
		customerID:     customerID,
		organisationID: organisationID,
	}
}

// CustomerID returns the customer id
func (c CustomerInfo) CustomerID() CustomerID {
	return c.customerID
}

// OrganisationID returns the organisation id, it may be empty
func (c CustomerInfo) OrganisationID() OrganisationID {
	return c.organisationID
}

// IsEmpty returns true if no customer is set
func (c CustomerInfo) IsEmpty() bool {
	return c.customerID == ""
}
