// Package repoindex loads a repository's package catalog from a JSON
// document addressed by --repository and turns it into both an
// xsolve.Source for C3 resolution and an order.Lookup for C4 ordering.
//
// The original xbps-solve reads signed binary repodata archives via
// xbps_repo_store; parsing that format is out of scope here, so a
// repository is instead a flat JSON catalog naming, per package, every
// version's run_depends and provides pkgpatterns exactly as they would
// appear in a plist, which is enough to exercise the same C2/C3/C4
// machinery against real-looking data.
package repoindex

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/contriboss/xsolve"
	"github.com/contriboss/xsolve/internal/errs"
	"github.com/contriboss/xsolve/order"
)

// Package is one version of a package as recorded in a repository catalog.
type Package struct {
	Depends  []string `json:"depends"`
	Provides []string `json:"provides"`
}

// catalog is the on-disk JSON shape: name -> version -> Package.
type catalog map[string]map[string]Package

// Index is the in-memory view of one or more merged repository catalogs.
type Index struct {
	packages map[string]map[string]Package
}

// Load reads and merges the JSON catalogs at paths, in order, using fs.
// A name/version pair already present from an earlier path is kept,
// matching xbps's front-of-search-list repository precedence for -R.
func Load(fs afero.Fs, paths []string) (*Index, error) {
	idx := &Index{packages: make(map[string]map[string]Package)}

	for _, path := range paths {
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errs.NotFound(fmt.Sprintf("repository %s", path), err)
		}

		var cat catalog
		if err := json.Unmarshal(raw, &cat); err != nil {
			return nil, errs.Internal(fmt.Sprintf("repository %s: invalid catalog", path), err)
		}

		for name, versions := range cat {
			dst, ok := idx.packages[name]
			if !ok {
				dst = make(map[string]Package)
				idx.packages[name] = dst
			}
			for version, pkg := range versions {
				if _, exists := dst[version]; exists {
					continue
				}
				dst[version] = pkg
			}
		}
	}

	return idx, nil
}

// Source builds an xsolve.Source over every version in the index,
// translating each depends pkgpattern into a Term via ParsePackagePattern.
func (idx *Index) Source() (xsolve.Source, error) {
	src := &xsolve.InMemorySource{Packages: make(map[xsolve.Name]map[xsolve.Version][]xsolve.Term)}

	for name, versions := range idx.packages {
		for version, pkg := range versions {
			terms := make([]xsolve.Term, 0, len(pkg.Depends))
			for _, dep := range pkg.Depends {
				depName, cond, err := xsolve.ParsePackagePattern(dep)
				if err != nil {
					return nil, errs.Internal(fmt.Sprintf("%s-%s: depends %q", name, version, dep), err)
				}
				terms = append(terms, xsolve.NewTerm(xsolve.MakeName(depName), cond))
			}
			src.AddPackage(xsolve.MakeName(name), xsolve.DeweyVersion(version), terms)
		}
	}

	return src, nil
}

// record adapts a resolved (name, version) pair to order.PackageRecord,
// extracting bare dependency/provides names from their pkgpatterns — C4
// orders already-decided packages, so only names matter, not the version
// constraints C3 already resolved.
type record struct {
	depends  []xsolve.Name
	provides []xsolve.Name
}

func (r record) RunDepends() []xsolve.Name { return r.depends }
func (r record) Provides() []xsolve.Name   { return r.provides }

// Lookup builds an order.Lookup resolving each decided package in solution
// to the dependency names and provides names recorded for its chosen
// version in the index.
func (idx *Index) Lookup(solution xsolve.Solution) order.Lookup {
	decided := make(map[xsolve.Name]xsolve.Version, len(solution))
	for _, nv := range solution {
		decided[nv.Name] = nv.Version
	}

	return func(name xsolve.Name) (order.PackageRecord, bool) {
		version, ok := decided[name]
		if !ok {
			return nil, false
		}

		versions, ok := idx.packages[name.Value()]
		if !ok {
			return nil, false
		}
		pkg, ok := versions[version.String()]
		if !ok {
			return nil, false
		}

		rec := record{}
		for _, dep := range pkg.Depends {
			depName, _, err := xsolve.ParsePackagePattern(dep)
			if err != nil {
				continue
			}
			rec.depends = append(rec.depends, xsolve.MakeName(depName))
		}
		for _, prov := range pkg.Provides {
			provName, _, err := xsolve.ParsePackagePattern(prov)
			if err != nil {
				continue
			}
			rec.provides = append(rec.provides, xsolve.MakeName(provName))
		}

		return rec, true
	}
}
