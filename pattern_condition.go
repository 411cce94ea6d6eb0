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

import "fmt"

// ParsePackagePattern parses a run_depends-style dependency expression
// ("NAME>=A<B", "NAME-V", or a glob) into a package name and a Condition
// built over DeweyVersion, suitable for use as a dependency Term.
//
// Glob patterns have no extractable interval, so they cannot participate
// in VersionSet intersection/union and are rejected with an error (a
// dependency is a constraint on a package's version, and a glob
// constrains the full pkgver string instead).
func ParsePackagePattern(pattern string) (name string, cond Condition, err error) {
	if containsGlobMeta(pattern) {
		return "", nil, fmt.Errorf("pattern %q is a glob and cannot be used as a dependency constraint", pattern)
	}

	bounds, ok := parsePkgPattern(pattern)
	if !ok {
		return "", nil, fmt.Errorf("pattern %q is not a valid package pattern", pattern)
	}

	if bounds.min == bounds.max && bounds.hasMin && bounds.hasMax && bounds.minIncl && bounds.maxIncl {
		return bounds.name, EqualsCondition{Version: DeweyVersion(bounds.min)}, nil
	}

	switch {
	case bounds.hasMin && bounds.hasMax:
		return bounds.name, NewVersionSetCondition(NewVersionRangeSet(
			DeweyVersion(bounds.min), bounds.minIncl,
			DeweyVersion(bounds.max), bounds.maxIncl,
		)), nil
	case bounds.hasMin:
		return bounds.name, NewVersionSetCondition(NewLowerBoundVersionSet(DeweyVersion(bounds.min), bounds.minIncl)), nil
	case bounds.hasMax:
		return bounds.name, NewVersionSetCondition(NewUpperBoundVersionSet(DeweyVersion(bounds.max), bounds.maxIncl)), nil
	default:
		return bounds.name, NewVersionSetCondition(FullVersionSet()), nil
	}
}

func containsGlobMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}
