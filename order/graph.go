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

// Package order linearises a resolved decision set so that every package
// appears after all of its chosen run dependencies (spec component C4).
//
// Nodes live in an arena addressed by NodeID, with edges stored as index
// arrays per node, mirroring the hash-keyed item arena the reference
// implementation used to avoid per-lookup allocation; the in-progress state
// machine below is the Go rendition of that arena's {Unvisited, OnStack,
// Done} per-node flags.
package order

import "github.com/contriboss/xsolve"

// NodeID indexes a node in a Graph's arena.
type NodeID int

type nodeState int

const (
	stateUnvisited nodeState = iota
	stateOnStack
	stateDone
)

type graphNode struct {
	name  xsolve.Name
	deps  []NodeID
	state nodeState
}

// Graph is a dependency graph over package names.
type Graph struct {
	nodes []graphNode
	index map[xsolve.Name]NodeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[xsolve.Name]NodeID)}
}

// NodeFor returns the NodeID for name, creating the node if this is its
// first mention.
func (g *Graph) NodeFor(name xsolve.Name) NodeID {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, graphNode{name: name})
	g.index[name] = id
	return id
}

// AddEdge records that from depends on to.
func (g *Graph) AddEdge(from, to xsolve.Name) {
	fid := g.NodeFor(from)
	tid := g.NodeFor(to)
	g.nodes[fid].deps = append(g.nodes[fid].deps, tid)
}

// Name returns the package name of the node at id.
func (g *Graph) Name(id NodeID) xsolve.Name {
	return g.nodes[id].name
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Has reports whether name has been added to the graph.
func (g *Graph) Has(name xsolve.Name) bool {
	_, ok := g.index[name]
	return ok
}
