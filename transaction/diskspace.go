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

// Package transaction turns an ordered decision set into a concrete
// transaction plan: per-mountpoint disk-space accounting and
// alternatives-group symlink verification (spec component C5).
package transaction

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/contriboss/xsolve/internal/errs"
)

// ignoredMountPrefixes lists ephemeral mounts excluded from accounting.
var ignoredMountPrefixes = []string{"/dev", "/proc", "/run", "/sys", "/tmp"}

// Action is the transaction action recorded against a package entry.
type Action int

const (
	ActionInstall Action = iota
	ActionUpdate
	ActionRemove
)

// DirSize is one directory's recorded installed size, taken from a
// package's "dirs" metadata.
type DirSize struct {
	Path string
	Size uint64
}

// Entry is one package moving through a transaction.
type Entry struct {
	Pkgver string
	Action Action
	// Preserve skips the remove-size accumulation on update, matching the
	// installed package's preserve flag.
	Preserve bool
	// InstallDirs is consulted for ActionInstall and ActionUpdate.
	InstallDirs []DirSize
	// RemoveDirs is consulted for ActionRemove, and for ActionUpdate when
	// Preserve is false.
	RemoveDirs []DirSize
}

// MountpointReport is the accounted disk usage for a single mountpoint.
type MountpointReport struct {
	Path        string
	InstallSize uint64
	RemoveSize  uint64
	FreeBytes   uint64
}

// Delta is the net byte change at this mountpoint; positive means space
// consumed.
func (m MountpointReport) Delta() int64 {
	return int64(m.InstallSize) - int64(m.RemoveSize)
}

// Deficit is how far Delta exceeds FreeBytes, or zero when it fits.
func (m MountpointReport) Deficit() uint64 {
	d := m.Delta()
	if d <= 0 {
		return 0
	}
	if uint64(d) <= m.FreeBytes {
		return 0
	}
	return uint64(d) - m.FreeBytes
}

// Mountpoints enumerates the system's mounted filesystems via gopsutil,
// discarding well-known ephemeral mounts and sorting descending by path
// length so the longest matching prefix is found first.
func Mountpoints() ([]MountpointReport, error) {
	partitions, err := disk.Partitions(true)
	if err != nil {
		return nil, errs.Internal("enumerate mountpoints", err)
	}

	reports := make([]MountpointReport, 0, len(partitions))
	for _, p := range partitions {
		if isIgnoredMount(p.Mountpoint) {
			continue
		}
		var free uint64
		if usage, uerr := disk.Usage(p.Mountpoint); uerr == nil {
			free = usage.Free
		}
		reports = append(reports, MountpointReport{Path: p.Mountpoint, FreeBytes: free})
	}

	sort.Slice(reports, func(i, j int) bool {
		return len(reports[i].Path) > len(reports[j].Path)
	})
	return reports, nil
}

func isIgnoredMount(path string) bool {
	for _, prefix := range ignoredMountPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// findMountpointIndex finds the deepest mountpoint covering dir, assuming
// reports is sorted descending by path length.
func findMountpointIndex(reports []MountpointReport, dir string) int {
	for i := range reports {
		p := reports[i].Path
		if !strings.HasPrefix(dir, p) {
			continue
		}
		if len(dir) == len(p) || strings.HasSuffix(p, "/") || dir[len(p)] == '/' {
			return i
		}
	}
	return -1
}

// Accumulate sums each entry's directory sizes into the mountpoint reports,
// then reports InsufficientSpace for every mountpoint whose resulting
// deficit is non-zero. Unlike the reference implementation it genuinely
// sums the recorded directory sizes instead of opening a package archive
// and walking past every entry without summing anything, and it only
// reports a deficit for mountpoints that actually lack space rather than
// unconditionally failing.
func Accumulate(reports []MountpointReport, entries []Entry) ([]MountpointReport, error) {
	out := make([]MountpointReport, len(reports))
	copy(out, reports)

	for _, e := range entries {
		switch e.Action {
		case ActionInstall:
			accumulate(out, e.InstallDirs, true)
		case ActionUpdate:
			accumulate(out, e.InstallDirs, true)
			if !e.Preserve {
				accumulate(out, e.RemoveDirs, false)
			}
		case ActionRemove:
			accumulate(out, e.RemoveDirs, false)
		}
	}

	var deficits []error
	for _, m := range out {
		if d := m.Deficit(); d > 0 {
			deficits = append(deficits, errs.InsufficientSpace(
				fmt.Sprintf("%s: needs %d more bytes free", m.Path, d), nil))
		}
	}
	if len(deficits) > 0 {
		return out, errors.Join(deficits...)
	}
	return out, nil
}

func accumulate(reports []MountpointReport, dirs []DirSize, install bool) {
	for _, d := range dirs {
		idx := findMountpointIndex(reports, d.Path)
		if idx < 0 {
			continue
		}
		if install {
			reports[idx].InstallSize += d.Size
		} else {
			reports[idx].RemoveSize += d.Size
		}
	}
}
