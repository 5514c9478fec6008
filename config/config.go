// Package config loads repotrust settings and yum .repo definitions.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"gopkg.in/ini.v1"
)

const (
	DefaultPath     = "/etc/repotrust.conf"
	DefaultReposDir = "/etc/yum.repos.d/"
)

// Config is the [main] section of the repotrust configuration file:
//
//	[main]
//	loglevel   = info
//	logfile    = /var/log/repotrust.log
//	workers    = 4
//	reposdir   = /etc/yum.repos.d/
//	releasever = 9
//	basearch   = x86_64
type Config struct {
	LogLevel   string
	LogFile    string
	Workers    int
	ReposDir   string
	ReleaseVer string
	BaseArch   string
}

func Default() Config {
	return Config{
		LogLevel: "warn",
		Workers:  runtime.NumCPU(),
		ReposDir: DefaultReposDir,
		BaseArch: ArchName(runtime.GOARCH),
	}
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	main := f.Section("main")
	cfg.LogLevel = main.Key("loglevel").MustString(cfg.LogLevel)
	cfg.LogFile = main.Key("logfile").MustString(cfg.LogFile)
	cfg.Workers = main.Key("workers").MustInt(cfg.Workers)
	cfg.ReposDir = main.Key("reposdir").MustString(cfg.ReposDir)
	cfg.ReleaseVer = main.Key("releasever").MustString(cfg.ReleaseVer)
	cfg.BaseArch = main.Key("basearch").MustString(cfg.BaseArch)
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("config %s: workers must be positive, got %d", path, cfg.Workers)
	}
	return cfg, nil
}

// Vars returns the substitutions applied to .repo base URLs.
func (c Config) Vars() map[string]string {
	vars := map[string]string{"basearch": c.BaseArch}
	if c.ReleaseVer != "" {
		vars["releasever"] = c.ReleaseVer
	} else if rel := ReleaseVer("/etc/os-release"); rel != "" {
		vars["releasever"] = rel
	}
	return vars
}
