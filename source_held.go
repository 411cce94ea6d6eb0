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

// HeldSource wraps a Source and pins a fixed set of packages ("held"
// packages, spec §4.3/§7) to a single version each, regardless of what the
// underlying source otherwise offers.
//
// A held package's GetVersions call returns only its pinned version (or a
// HoldError, if the pin doesn't exist in the underlying source); the
// solver treats a HoldError like a package with no candidate versions and
// turns it into an incompatibility, so the failure surfaces the same way
// as any other unsatisfiable positive constraint.
//
// Example:
//
//	held := NewHeldSource(repoSource)
//	held.Hold(MakeName("glibc"), DeweyVersion("2.38_1"))
//	solver := NewSolver(root, held)
type HeldSource struct {
	source Source
	holds  map[Name]Version
}

// NewHeldSource wraps source with an initially empty hold set.
func NewHeldSource(source Source) *HeldSource {
	return &HeldSource{source: source, holds: make(map[Name]Version)}
}

// Hold pins name to exactly version.
func (h *HeldSource) Hold(name Name, version Version) {
	h.holds[name] = version
}

// Unhold removes any pin on name, reverting to the underlying source's full
// version list.
func (h *HeldSource) Unhold(name Name) {
	delete(h.holds, name)
}

// IsHeld reports whether name is currently pinned, and to what version.
func (h *HeldSource) IsHeld(name Name) (Version, bool) {
	v, ok := h.holds[name]
	return v, ok
}

// GetVersions returns only the held version for a pinned package, if that
// version actually exists in the underlying source; otherwise it reports
// HoldError rather than PackageNotFoundError, so a direct caller can tell a
// failed pin apart from an absent package. The solver itself handles both
// errors alike, as "no candidate versions".
func (h *HeldSource) GetVersions(name Name) ([]Version, error) {
	held, ok := h.holds[name]
	if !ok {
		return h.source.GetVersions(name)
	}

	all, err := h.source.GetVersions(name)
	if err != nil {
		return nil, err
	}
	for _, v := range all {
		if v.Sort(held) == 0 {
			return []Version{v}, nil
		}
	}
	return nil, &HoldError{Package: name, Version: held}
}

// GetDependencies delegates unchanged: held packages still take their real
// dependencies from the underlying source.
func (h *HeldSource) GetDependencies(name Name, version Version) ([]Term, error) {
	return h.source.GetDependencies(name, version)
}

var _ Source = &HeldSource{}
