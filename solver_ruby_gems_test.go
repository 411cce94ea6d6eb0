package xsolve

import (
	"fmt"
	"testing"
)

// TestDiamondDependencyPicksCompatibleVersion exercises a diamond dependency
// shape that has historically tripped up naive PubGrub search order: the
// solver must backtrack past an early, plausible-looking candidate to find
// the version that satisfies both paths through the diamond, rather than
// giving up once the first candidate conflicts.
//
// The scenario mirrors a real xbps repodata shape:
//   - Root depends on: xfce4-panel (any) and xfce4-settings (any)
//   - xfce4-panel has versions: 4.18.0_1, 4.18.2_1, 4.20.0_1
//   - xfce4-panel 4.18.0_1 depends on libxfce4util>=4.20_1<5
//   - xfce4-panel 4.18.2_1 depends on libxfce4util>=4.18_1<4.20_1  (compatible!)
//   - xfce4-panel 4.20.0_1 depends on libxfce4util>=4.20_1<5
//   - xfce4-settings has versions: 4.18.1_1, 4.18.2_1
//   - both depend on libxfce4util>=4.18_2<4.20_1
//   - libxfce4util has versions: 4.18.0_1, 4.18.2_1, 4.19.0_1, 4.20.0_1
//
// Expected solution: xfce4-panel 4.18.2_1, xfce4-settings 4.18.2_1,
// libxfce4util 4.19.0_1 (the highest version satisfying both ranges). A solver
// that explores xfce4-panel's highest version first must learn from that
// conflict and retry with 4.18.2_1 rather than declaring the whole
// repository set unsolvable.
func TestDiamondDependencyPicksCompatibleVersion(t *testing.T) {
	source := NewMapSource()

	source.Add("libxfce4util", "4.18.0_1", nil)
	source.Add("libxfce4util", "4.18.2_1", nil)
	source.Add("libxfce4util", "4.19.0_1", nil)
	source.Add("libxfce4util", "4.20.0_1", nil)

	source.Add("xfce4-panel", "4.18.0_1", []Dependency{
		{Name: "libxfce4util", Pattern: "libxfce4util>=4.20_1<5"},
	})
	source.Add("xfce4-panel", "4.18.2_1", []Dependency{
		{Name: "libxfce4util", Pattern: "libxfce4util>=4.18_1<4.20_1"},
	})
	source.Add("xfce4-panel", "4.20.0_1", []Dependency{
		{Name: "libxfce4util", Pattern: "libxfce4util>=4.20_1<5"},
	})

	source.Add("xfce4-settings", "4.18.1_1", []Dependency{
		{Name: "libxfce4util", Pattern: "libxfce4util>=4.18_2<4.20_1"},
	})
	source.Add("xfce4-settings", "4.18.2_1", []Dependency{
		{Name: "libxfce4util", Pattern: "libxfce4util>=4.18_2<4.20_1"},
	})

	rootSource := NewRootSource()
	rootSource.AddPackage(MakeName("xfce4-panel"), NewAnyVersionCondition())
	rootSource.AddPackage(MakeName("xfce4-settings"), NewAnyVersionCondition())

	solver := NewSolver(rootSource, source)

	solution, err := solver.Solve(rootSource.Term())
	if err != nil {
		t.Fatalf("Expected solution but got error: %v", err)
	}

	solutionMap := make(map[string]string)
	for _, pkg := range solution {
		if pkg.Name.Value() != "$$root" {
			solutionMap[pkg.Name.Value()] = pkg.Version.String()
		}
	}

	if solutionMap["xfce4-panel"] != "4.18.2_1" {
		t.Errorf("Expected xfce4-panel 4.18.2_1, got %s", solutionMap["xfce4-panel"])
	}
	if solutionMap["xfce4-settings"] != "4.18.2_1" {
		t.Errorf("Expected xfce4-settings 4.18.2_1, got %s", solutionMap["xfce4-settings"])
	}
	if solutionMap["libxfce4util"] != "4.19.0_1" {
		t.Errorf("Expected libxfce4util 4.19.0_1, got %s", solutionMap["libxfce4util"])
	}

	stats := solver.Stats()
	t.Logf("solved with %d attempts, %d backtracks", stats.Attempts, stats.Backtracks)
	for name, version := range solutionMap {
		t.Logf("  %s = %s", name, version)
	}
}

// NewAnyVersionCondition creates a condition that accepts any version.
func NewAnyVersionCondition() Condition {
	return NewVersionSetCondition(FullVersionSet())
}

// MapSource is a simple in-memory source for testing, keyed by plain
// strings rather than interned Names so test tables can be written tersely.
type MapSource struct {
	packages map[string][]packageVersion
}

type packageVersion struct {
	version string
	deps    []Dependency
}

// Dependency names a run_depends-style pkgpattern dependency; Pattern is
// parsed with ParsePackagePattern, the same entry point the xsolve CLI uses
// for pkgpattern arguments and repodata run_depends strings.
type Dependency struct {
	Name    string
	Pattern string
}

func NewMapSource() *MapSource {
	return &MapSource{
		packages: make(map[string][]packageVersion),
	}
}

func (m *MapSource) Add(name, version string, deps []Dependency) {
	m.packages[name] = append(m.packages[name], packageVersion{
		version: version,
		deps:    deps,
	})
}

func (m *MapSource) GetVersions(name Name) ([]Version, error) {
	pkgName := name.Value()
	versions := m.packages[pkgName]
	if len(versions) == 0 {
		return nil, &PackageNotFoundError{Package: name}
	}

	result := make([]Version, 0, len(versions))
	for _, pv := range versions {
		result = append(result, DeweyVersion(pv.version))
	}
	return result, nil
}

func (m *MapSource) GetDependencies(name Name, version Version) ([]Term, error) {
	pkgName := name.Value()
	versionStr := version.String()

	versions := m.packages[pkgName]
	for _, pv := range versions {
		if pv.version == versionStr {
			var terms []Term
			for _, dep := range pv.deps {
				_, condition, err := ParsePackagePattern(dep.Pattern)
				if err != nil {
					return nil, fmt.Errorf("failed to parse pattern %q: %w", dep.Pattern, err)
				}
				terms = append(terms, NewTerm(MakeName(dep.Name), condition))
			}
			return terms, nil
		}
	}

	return nil, &PackageVersionNotFoundError{
		Package: name,
		Version: version,
	}
}
