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

package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contriboss/xsolve"
	"github.com/contriboss/xsolve/internal/config"
	"github.com/contriboss/xsolve/internal/errs"
	"github.com/contriboss/xsolve/internal/logging"
	"github.com/contriboss/xsolve/internal/repoindex"
	"github.com/contriboss/xsolve/order"
)

// newSolveCommand builds the single "solve" subcommand: given one or more
// pkgpattern arguments (e.g. "vim>=8.0") it resolves a full transaction
// against the repositories named by --repository, then orders the result
// for installation, mirroring xbps-solve's init -> solve -> exit sequence.
func newSolveCommand(flags *rootFlags) *cobra.Command {
	var holds []string

	cmd := &cobra.Command{
		Use:   "solve [pkgpattern...]",
		Short: "Resolve a set of pkgpatterns into an ordered install plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFromContext(cmd.Context())

			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}

			return runSolve(cfg, args, holds, log)
		},
	}

	cmd.Flags().StringSliceVar(&holds, "hold", nil, "repeatable: pin name=version, rejecting any other candidate")
	_ = viper.BindPFlag("hold", cmd.Flags().Lookup("hold"))

	return cmd
}

func runSolve(cfg config.Config, patterns, holds []string, log *logging.Logger) error {
	if len(cfg.Repositories) == 0 {
		return errs.NotFound("no repositories given; pass --repository/-R at least once", nil)
	}

	idx, err := repoindex.Load(afero.NewOsFs(), cfg.Repositories)
	if err != nil {
		return err
	}

	source, err := idx.Source()
	if err != nil {
		return err
	}

	// The CDCL solver re-queries GetVersions/GetDependencies for the same
	// pkgname repeatedly during conflict resolution and backtracking; the
	// repoindex Source is already in memory but sorts a fresh version list
	// on every GetVersions call, so cache its answers for the lifetime of
	// this solve.
	cached := xsolve.NewCachedSource(source)
	held := xsolve.NewHeldSource(cached)
	for _, pin := range holds {
		name, version, err := parseHold(pin)
		if err != nil {
			return errs.NotFound(fmt.Sprintf("invalid --hold %q", pin), err)
		}
		held.Hold(name, version)
		log.Info("package held", "name", name.Value(), "version", version.String())
	}

	root := xsolve.NewRootSource()
	for _, pattern := range patterns {
		name, cond, err := xsolve.ParsePackagePattern(pattern)
		if err != nil {
			return errs.NotFound(fmt.Sprintf("invalid pkgpattern %q", pattern), err)
		}
		root.AddPackage(xsolve.MakeName(name), cond)
	}

	solver := xsolve.NewSolver(root, held)
	solution, err := solver.Solve(root.Term())
	if err != nil {
		return errs.UnsatisfiableConflict("no solution satisfies the given pkgpatterns", err)
	}

	if cfg.Flags.Verbose {
		stats := solver.Stats()
		log.Info("solver finished", "attempts", stats.Attempts, "backtracks", stats.Backtracks)
		cacheStats := cached.GetCacheStats()
		log.Info("source cache", "versions_hit_rate", cacheStats.VersionsHitRate, "deps_hit_rate", cacheStats.DepsHitRate)
	}

	roots := make([]xsolve.Name, 0, len(solution))
	for _, nv := range solution {
		if nv.Name == xsolve.MakeName("$$root") {
			continue
		}
		roots = append(roots, nv.Name)
	}

	graph, err := order.BuildGraph(roots, idx.Lookup(solution), true)
	if err != nil {
		return err
	}

	plan, err := graph.Sort()
	if err != nil {
		// Sort's *CycleError message already starts with "dependency cycle",
		// which exitCodeForError keys off to pick a distinct exit code.
		return errs.UnsatisfiableConflict(err.Error(), err)
	}

	for _, name := range plan {
		version, _ := solution.GetVersion(name)
		fmt.Println(xsolve.NameVersion{Name: name, Version: version})
	}

	return nil
}

// parseHold splits a "name=version" --hold argument.
func parseHold(pin string) (xsolve.Name, xsolve.Version, error) {
	for i := 0; i < len(pin); i++ {
		if pin[i] == '=' {
			return xsolve.MakeName(pin[:i]), xsolve.DeweyVersion(pin[i+1:]), nil
		}
	}
	return xsolve.Name{}, nil, fmt.Errorf("expected name=version, got %q", pin)
}
