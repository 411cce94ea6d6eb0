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

package order

import (
	"fmt"

	"github.com/contriboss/xsolve"
	"github.com/contriboss/xsolve/internal/errs"
)

// PackageRecord is the minimal view of a decided package that C4 needs: its
// resolved run-time dependency names and the virtual names it itself
// provides. Dependencies already satisfied by the package's own provides
// list are skipped rather than resolved to a node, matching spec §4.4.
type PackageRecord interface {
	RunDepends() []xsolve.Name
	Provides() []xsolve.Name
}

// Lookup resolves a package name (concrete or virtual/provided) to its
// record. ok is false when no package in the pool/database offers name.
type Lookup func(name xsolve.Name) (rec PackageRecord, ok bool)

// BuildGraph walks roots (typically every package name C3 decided on) and
// every transitive run-dependency reachable from them via lookup, producing
// a Graph ready for Sort.
//
// When strict is true (rpool mode: ordering a repository-pool resolution)
// a dependency that lookup cannot resolve is a fatal MissingDependency
// error. When false (installed-DB mode) an unresolved dependency is
// silently skipped, since the installed database only contains optional
// runtime deps of packages that are marked ignore.
func BuildGraph(roots []xsolve.Name, lookup Lookup, strict bool) (*Graph, error) {
	g := NewGraph()
	visited := make(map[xsolve.Name]bool)

	var visit func(name xsolve.Name) error
	visit = func(name xsolve.Name) error {
		if visited[name] {
			return nil
		}
		visited[name] = true

		rec, ok := lookup(name)
		if !ok {
			if strict {
				return errs.MissingDependency(fmt.Sprintf("missing dependency: %s", name.Value()), nil)
			}
			g.NodeFor(name)
			return nil
		}
		g.NodeFor(name)

	depLoop:
		for _, dep := range rec.RunDepends() {
			for _, provided := range rec.Provides() {
				if provided == dep {
					continue depLoop
				}
			}

			if _, ok := lookup(dep); !ok {
				if strict {
					return errs.MissingDependency(
						fmt.Sprintf("%s: missing dependency %s", name.Value(), dep.Value()), nil)
				}
				continue
			}

			g.AddEdge(name, dep)
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	return g, nil
}
