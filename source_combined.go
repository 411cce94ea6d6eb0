// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xsolve

import (
	"errors"
	"slices"
)

// CombinedSource aggregates multiple package sources into a single source,
// the shape xbps itself uses to resolve a pkgpattern against several
// repositories (e.g. the local repocache plus one or more remote mirrors)
// in the order they appear in xbps.d configuration.
//
// This is useful for:
//   - Combining an installed-package source with remote repodata sources
//   - Implementing repository fallbacks (mirror down, try the next one)
//   - Testing with mixed source types
//
// Example:
//
//	installed := &InMemorySource{}
//	mirror := &RegistrySource{}
//	combined := CombinedSource{installed, mirror}
//	solver := NewSolver(root, combined)
type CombinedSource []Source

// GetVersions queries all sources and returns the combined, deduplicated set
// of versions in sorted order. The same version commonly appears in more
// than one repository (an installed package shadowed by its own mirror
// entry); versions with the same String() are collapsed to one entry so
// the solver doesn't see the same version twice. A source reporting
// PackageNotFoundError is skipped; any other error from a source is
// returned at once. PackageNotFoundError is returned if no source has the
// package at all.
func (s CombinedSource) GetVersions(name Name) ([]Version, error) {
	var ret []Version
	seen := make(map[string]bool)
	for _, source := range s {
		versions, err := source.GetVersions(name)
		if err != nil {
			var pkgErr *PackageNotFoundError
			if errors.As(err, &pkgErr) {
				continue
			}
			return nil, err
		}
		for _, v := range versions {
			if key := v.String(); !seen[key] {
				seen[key] = true
				ret = append(ret, v)
			}
		}
	}

	if len(ret) == 0 {
		return nil, &PackageNotFoundError{Package: name}
	}

	// sort the versions
	slices.SortFunc(ret, func(a Version, b Version) int {
		return a.Sort(b)
	})

	return ret, nil
}

// GetDependencies queries sources in order and returns dependencies from the
// first source that has the specified package version.
func (s CombinedSource) GetDependencies(name Name, version Version) ([]Term, error) {
	for _, source := range s {
		deps, err := source.GetDependencies(name, version)
		if err != nil {
			var pkgErr *PackageNotFoundError
			var verErr *PackageVersionNotFoundError
			switch {
			case errors.As(err, &pkgErr):
				continue
			case errors.As(err, &verErr):
				continue
			default:
				return nil, err
			}
		} else {
			return deps, nil
		}
	}

	return nil, &PackageVersionNotFoundError{Package: name, Version: version}
}

var (
	_ Source = CombinedSource{}
)
