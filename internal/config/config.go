// Package config loads the solver's rootdir/cachedir/confdir and flag
// bitset (spec §6) from flags, environment, and an optional config file via
// viper.
package config

import (
	"github.com/spf13/viper"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

const envPrefix = "XSOLVE"

// Flags is the solver's flag bitset, matching the original getopt table
// (bin/xbps-solve/main.c): DEBUG, IGNORE_CONF_REPOS, REPOS_MEMSYNC, VERBOSE.
type Flags struct {
	Debug           bool
	IgnoreConfRepos bool
	ReposMemorySync bool
	Verbose         bool
}

// Config is the resolved runtime configuration for a solve invocation.
type Config struct {
	RootDir      string
	CacheDir     string
	ConfDir      string
	ConfigFile   string
	Repositories []string
	Flags        Flags
}

// Load reads configuration from viper (already populated by BindPFlags in
// the CLI layer) plus XSOLVE_-prefixed environment variables and an
// optional config file.
func Load(configFile string) (Config, error) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
	} else {
		viper.SetConfigName("xsolve")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/xsolve")
		viper.AddConfigPath("$HOME/.config/xsolve")
		// a missing optional config file is not an error
		_ = viper.ReadInConfig()
	}

	return Config{
		RootDir:      viper.GetString("rootdir"),
		CacheDir:     viper.GetString("cachedir"),
		ConfDir:      viper.GetString("confdir"),
		ConfigFile:   configFile,
		Repositories: viper.GetStringSlice("repository"),
		Flags: Flags{
			Debug:           viper.GetBool("debug"),
			IgnoreConfRepos: viper.GetBool("ignore-conf-repos"),
			ReposMemorySync: viper.GetBool("memory-sync"),
			Verbose:         viper.GetBool("verbose"),
		},
	}, nil
}
