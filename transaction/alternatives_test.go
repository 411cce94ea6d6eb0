package transaction_test

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/contriboss/xsolve/transaction"
)

var errLinkNotFound = errors.New("symlink not found")

type fakeLinkReader map[string]string

func (f fakeLinkReader) Readlink(path string) (string, error) {
	target, ok := f[path]
	if !ok {
		return "", errLinkNotFound
	}
	return target, nil
}

func TestParseAlternativeEntries(t *testing.T) {
	t.Parallel()

	entries, errs := transaction.ParseAlternativeEntries([]string{
		"/usr/bin/vi:/usr/bin/vim",
		"malformed",
	})
	if len(errs) != 1 {
		t.Fatalf("expected one parse error for the malformed entry, got %d", len(errs))
	}
	if len(entries) != 1 || entries[0].LinkPath != "/usr/bin/vi" || entries[0].Target != "/usr/bin/vim" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestCheckSymlinksAbsoluteMatch(t *testing.T) {
	t.Parallel()

	// the recorded target is absolute ("/usr/bin/vim"); an on-disk symlink
	// stores it relative to its own directory ("/usr/bin"), so the real
	// readlink result is "vim", not the absolute path.
	reader := fakeLinkReader{
		"/root/usr/bin/vi": "vim",
	}
	entries := []transaction.AlternativeEntry{
		{LinkPath: "/usr/bin/vi", Target: "/usr/bin/vim"},
	}

	errsOut := transaction.CheckSymlinks(reader, "/root", "vim", "vi", entries)
	if len(errsOut) != 0 {
		t.Fatalf("expected no errors, got %v", errsOut)
	}
}

func TestCheckSymlinksReportsMismatchWithoutAborting(t *testing.T) {
	t.Parallel()

	reader := fakeLinkReader{
		"/root/usr/bin/vi":      "nvi",
		"/root/usr/bin/vi-diff": "vimdiff",
	}
	entries := []transaction.AlternativeEntry{
		{LinkPath: "/usr/bin/vi", Target: "/usr/bin/vim"},
		{LinkPath: "/usr/bin/vi-diff", Target: "/usr/bin/vimdiff"},
	}

	errsOut := transaction.CheckSymlinks(reader, "/root", "vim", "vi", entries)
	if len(errsOut) != 1 {
		t.Fatalf("expected exactly one mismatch error (second link is fine), got %v", errsOut)
	}
}

func TestCheckSymlinksMissingLinkReported(t *testing.T) {
	t.Parallel()

	reader := fakeLinkReader{}
	entries := []transaction.AlternativeEntry{
		{LinkPath: "/usr/bin/vi", Target: "/usr/bin/vim"},
	}

	errsOut := transaction.CheckSymlinks(reader, "/root", "vim", "vi", entries)
	if len(errsOut) != 1 {
		t.Fatalf("expected one error for unreadable symlink, got %v", errsOut)
	}
}

func TestCheckPackageAlternativesOnlySkipsNonHead(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/root", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	reader := fakeLinkReader{
		"/root/usr/bin/vi": "vim",
	}
	registry := transaction.Registry{
		"vi": {"vim", "nvi"},
	}
	pkgAlts := transaction.PackageAlternatives{
		"vi": {{LinkPath: "/usr/bin/vi", Target: "/usr/bin/vim"}},
	}

	// nvi does not head the group, so it should not be checked at all.
	errsOut := transaction.CheckPackageAlternatives(reader, fs, "/root", "nvi", registry, pkgAlts)
	if len(errsOut) != 0 {
		t.Fatalf("expected non-head package to be skipped, got %v", errsOut)
	}

	errsOut = transaction.CheckPackageAlternatives(reader, fs, "/root", "vim", registry, pkgAlts)
	if len(errsOut) != 0 {
		t.Fatalf("expected head package's correct link to pass, got %v", errsOut)
	}
}

func TestCheckPackageAlternativesMissingRoot(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	reader := fakeLinkReader{}
	registry := transaction.Registry{"vi": {"vim"}}
	pkgAlts := transaction.PackageAlternatives{
		"vi": {{LinkPath: "/usr/bin/vi", Target: "/usr/bin/vim"}},
	}

	errsOut := transaction.CheckPackageAlternatives(reader, fs, "/does-not-exist", "vim", registry, pkgAlts)
	if len(errsOut) != 1 {
		t.Fatalf("expected one error for missing rootdir, got %v", errsOut)
	}
}
