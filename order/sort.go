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
	"strings"

	"github.com/contriboss/xsolve"
)

// CycleError reports a dependency cycle discovered while ordering. Cycle
// lists the involved packages in dependency order, closing back on the
// first element.
type CycleError struct {
	Cycle []xsolve.Name
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, n := range e.Cycle {
		names[i] = n.Value()
	}
	return fmt.Sprintf("dependency cycle: %s", strings.Join(names, " -> "))
}

// Sort linearises every node in g so that each package appears after all of
// its chosen run dependencies, using a depth-first post-order walk: a node
// is marked OnStack on entry and Done once every dependency beneath it has
// been appended to the result, matching the reference two-pass design's
// collect/emit split without its allocation-per-run-hash-table.
//
// Unlike the source routine this never drops a package to break a cycle: a
// node re-entered while still OnStack is reported as a CycleError naming the
// full cycle, leaving the decision of how (or whether) to break it to the
// caller.
func (g *Graph) Sort() ([]xsolve.Name, error) {
	result := make([]xsolve.Name, 0, len(g.nodes))
	stack := make([]NodeID, 0, len(g.nodes))

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		switch g.nodes[id].state {
		case stateDone:
			return nil
		case stateOnStack:
			return g.cycleError(id, stack)
		}

		g.nodes[id].state = stateOnStack
		stack = append(stack, id)
		for _, dep := range g.nodes[id].deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]

		g.nodes[id].state = stateDone
		result = append(result, g.nodes[id].name)
		return nil
	}

	for id := range g.nodes {
		if err := visit(NodeID(id)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (g *Graph) cycleError(id NodeID, stack []NodeID) *CycleError {
	start := 0
	for i, s := range stack {
		if s == id {
			start = i
			break
		}
	}
	cycle := make([]xsolve.Name, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		cycle = append(cycle, g.nodes[s].name)
	}
	cycle = append(cycle, g.nodes[id].name)
	return &CycleError{Cycle: cycle}
}

// BreakCycle removes the edge from -> to, allowing a subsequent Sort call to
// make progress past a cycle a caller has chosen to break rather than abort
// on, per spec §4.4 ("report rather than emitted so callers can decide
// whether to abort or break the cycle at a named edge"). It also resets
// every node's state to Unvisited so Sort can be re-run cleanly.
func (g *Graph) BreakCycle(from, to xsolve.Name) {
	fid, ok := g.index[from]
	if !ok {
		return
	}
	tid, ok := g.index[to]
	if !ok {
		return
	}
	deps := g.nodes[fid].deps
	for i, d := range deps {
		if d == tid {
			g.nodes[fid].deps = append(deps[:i], deps[i+1:]...)
			break
		}
	}
	for i := range g.nodes {
		g.nodes[i].state = stateUnvisited
	}
}
