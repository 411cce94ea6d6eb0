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

package transaction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/contriboss/xsolve/internal/errs"
)

// LinkReader reads the target of a symlink. afero.Fs has no Readlink
// method, so production code uses osLinkReader (backed by os.Readlink)
// while tests can supply a fake that doesn't require real symlinks on
// disk.
type LinkReader interface {
	Readlink(path string) (string, error)
}

// osLinkReader reads real symlinks via the standard library.
type osLinkReader struct{}

// Readlink implements LinkReader using os.Readlink.
func (osLinkReader) Readlink(path string) (string, error) { return os.Readlink(path) }

// OSLinkReader is the production LinkReader.
var OSLinkReader LinkReader = osLinkReader{}

// AlternativeEntry is one "linkpath:target" pair recorded for a package's
// alternatives-group membership.
type AlternativeEntry struct {
	LinkPath string
	Target   string
}

// ParseAlternativeEntries splits raw "linkpath:target" strings, as stored in
// a package's alternatives map, into structured entries. A malformed entry
// (missing the ':' separator) is reported but does not stop the rest from
// parsing.
func ParseAlternativeEntries(raw []string) ([]AlternativeEntry, []error) {
	entries := make([]AlternativeEntry, 0, len(raw))
	var errsOut []error
	for _, r := range raw {
		link, target, ok := strings.Cut(r, ":")
		if !ok {
			errsOut = append(errsOut, errs.AlternativeLinkBroken(
				fmt.Sprintf("invalid alternative %q", r), nil))
			continue
		}
		entries = append(entries, AlternativeEntry{LinkPath: link, Target: target})
	}
	return entries, errsOut
}

// Registry is the top-level "_XBPS_ALTERNATIVES_" mapping from group name to
// the ordered list of packages that may provide it; index 0 is the active
// head.
type Registry map[string][]string

// IsHead reports whether pkgname currently heads group.
func (r Registry) IsHead(group, pkgname string) bool {
	pkgs, ok := r[group]
	return ok && len(pkgs) > 0 && pkgs[0] == pkgname
}

// PackageAlternatives maps each alternatives group a package participates in
// to that group's recorded link entries for the package.
type PackageAlternatives map[string][]AlternativeEntry

// resolveLinkPath joins a relative linkpath against target's parent
// directory, per the reference implementation's path algebra; an absolute
// linkpath is returned unchanged.
func resolveLinkPath(linkpath, target string) string {
	if filepath.IsAbs(linkpath) {
		return linkpath
	}
	return filepath.Join(filepath.Dir(target), linkpath)
}

// resolveTarget converts an absolute target into a path relative to
// linkpath's directory, matching what a symlink on disk would actually
// store (relative symlinks are resolved relative to their own directory,
// not the working directory). A target that is already relative is
// returned unchanged.
func resolveTarget(linkpath, target string) (string, error) {
	if !filepath.IsAbs(target) {
		return target, nil
	}
	return filepath.Rel(filepath.Dir(linkpath), target)
}

// CheckSymlinks verifies every alternative entry recorded for pkgname/group
// against rootdir. Every mismatch or read error is reported; none of them
// abort verification of the remaining entries in the group.
func CheckSymlinks(reader LinkReader, rootdir, pkgname, group string, entries []AlternativeEntry) []error {
	var out []error

	for _, e := range entries {
		linkpath := resolveLinkPath(e.LinkPath, e.Target)

		target, err := resolveTarget(linkpath, e.Target)
		if err != nil {
			out = append(out, errs.AlternativeLinkBroken(
				fmt.Sprintf("%s: alternatives group %s symlink %s: %v", pkgname, group, linkpath, err), err))
			continue
		}

		fullPath := filepath.Join(rootdir, linkpath)
		actual, err := reader.Readlink(fullPath)
		if err != nil {
			out = append(out, errs.AlternativeLinkBroken(
				fmt.Sprintf("%s: alternatives group %s symlink %s: %v", pkgname, group, linkpath, err), err))
			continue
		}
		if actual != target {
			out = append(out, errs.AlternativeLinkBroken(
				fmt.Sprintf("%s: alternatives group %s symlink %s has wrong target", pkgname, group, linkpath), nil))
		}
	}

	return out
}

// CheckPackageAlternatives verifies, for every group pkgname participates in
// and currently heads, that group's recorded symlinks against rootdir,
// first confirming rootdir itself exists and is a directory via rootFS (an
// afero.Fs, letting callers substitute an in-memory filesystem in tests
// without touching real paths). It returns every mismatch/read error found
// across every group; a failure in one group never aborts verification of
// the rest.
func CheckPackageAlternatives(reader LinkReader, rootFS afero.Fs, rootdir, pkgname string, registry Registry, pkgAlts PackageAlternatives) []error {
	info, err := rootFS.Stat(rootdir)
	if err != nil {
		return []error{errs.Internal(fmt.Sprintf("rootdir %s: %v", rootdir, err), err)}
	}
	if !info.IsDir() {
		return []error{errs.Internal(fmt.Sprintf("rootdir %s is not a directory", rootdir), nil)}
	}

	var out []error
	for group, entries := range pkgAlts {
		if !registry.IsHead(group, pkgname) {
			continue
		}
		out = append(out, CheckSymlinks(reader, rootdir, pkgname, group, entries)...)
	}
	return out
}
