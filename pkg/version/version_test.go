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

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveVAndHash(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		version  string
		expected string
	}{
		{version: "", expected: ""},
		{version: "v1.2.0", expected: "1.2.0"},
		{version: "v1.2.0-dirty", expected: "1.2.0"},
		{version: "v1.2.0-rc.1-12-gf3a9c1d", expected: "1.2.0-rc.1"},
		{version: "v1.3.0-alpha-43-g7a6f2c81-dev", expected: "1.3.0-alpha"},
		{version: "None", expected: "None"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, removeVAndHash(tc.version), tc.version)
	}
}

func TestReleaseSemver(t *testing.T) {
	origin := ReleaseVersion
	defer func() { ReleaseVersion = origin }()

	ReleaseVersion = "None"
	require.Equal(t, "", ReleaseSemver())

	ReleaseVersion = "v1.2.0-12-gf3a9c1d"
	require.Equal(t, "1.2.0", ReleaseSemver())
}

func TestGetRawInfo(t *testing.T) {
	info := GetRawInfo()
	require.Contains(t, info, "Release Version: "+ReleaseVersion)
	require.Contains(t, info, "Git Commit Hash: ")
}
