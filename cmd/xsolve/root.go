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
	"errors"
	"os"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contriboss/xsolve/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

type rootFlags struct {
	// configFile is an explicit viper config file path (--config-file),
	// distinct from confDir which is xbps's -C/--config confdir-of-snippets.
	configFile string
	rootDir    string
	cacheDir   string
	confDir    string
	repos      []string
	verbose    bool
	debug      bool
	memorySync bool
	ignoreConf bool
}

// Execute runs the xsolve command tree, exiting the process with a code
// derived from any returned error's errbuilder code.
func Execute() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:     "xsolve",
		Short:   "Transaction solver for a source-based binary package manager",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			switch {
			case flags.debug:
				level = "debug"
			case flags.verbose:
				level = "info"
			}
			log := logging.NewConsole(level)
			cmd.SetContext(withLogger(cmd.Context(), log))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.confDir, "config", "C", "", "path to confdir (xbps.d)")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config-file", "", "path to a xsolve.yaml config file (defaults to searching ./, /etc/xsolve, $HOME/.config/xsolve)")
	cmd.PersistentFlags().StringVarP(&flags.cacheDir, "cachedir", "c", "", "path to cachedir")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "debug mode shown to stderr")
	cmd.PersistentFlags().BoolVarP(&flags.ignoreConf, "ignore-conf-repos", "i", false, "ignore repositories defined in xbps.d")
	cmd.PersistentFlags().BoolVarP(&flags.memorySync, "memory-sync", "M", false, "fetch and hold remote repository data in memory only")
	cmd.PersistentFlags().StringSliceVarP(&flags.repos, "repository", "R", nil, "repeatable: add a repository to the front of the search list")
	cmd.PersistentFlags().StringVarP(&flags.rootDir, "rootdir", "r", "/", "full path to rootdir")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose messages")

	_ = viper.BindPFlag("confdir", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("config-file", cmd.PersistentFlags().Lookup("config-file"))
	_ = viper.BindPFlag("cachedir", cmd.PersistentFlags().Lookup("cachedir"))
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("ignore-conf-repos", cmd.PersistentFlags().Lookup("ignore-conf-repos"))
	_ = viper.BindPFlag("memory-sync", cmd.PersistentFlags().Lookup("memory-sync"))
	_ = viper.BindPFlag("repository", cmd.PersistentFlags().Lookup("repository"))
	_ = viper.BindPFlag("rootdir", cmd.PersistentFlags().Lookup("rootdir"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newSolveCommand(flags))
	return cmd
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.HasPrefix(message, "dependency cycle") {
			return 3
		}
		return 4
	case errbuilder.CodeNotFound:
		return 5
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
