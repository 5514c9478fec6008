package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luochenglcs/repotrust/repolog"

	"gopkg.in/ini.v1"
)

var archMap = map[string]string{
	"amd64":   "x86_64",
	"386":     "i386",
	"686":     "i686",
	"arm64":   "aarch64",
	"arm":     "arm",
	"ppc64":   "ppc64",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

// ArchName maps a GOARCH value to the rpm architecture name.
func ArchName(goarch string) string {
	if a, ok := archMap[goarch]; ok {
		return a
	}
	return goarch
}

// RepoConfig represents one section of a yum .repo file.
type RepoConfig struct {
	Name     string
	BaseURL  string
	Enabled  bool
	GPGCheck bool
}

// RepomdURL is where the repository publishes its index.
func (rc RepoConfig) RepomdURL() string {
	return rc.ArtifactURL("repodata/repomd.xml")
}

// ArtifactURL resolves a repomd location against the base URL.
func (rc RepoConfig) ArtifactURL(location string) string {
	return strings.TrimRight(rc.BaseURL, "/") + "/" + strings.TrimLeft(location, "/")
}

// ReleaseVer reads VERSION_ID from an os-release file.
func ReleaseVer(osRelease string) string {
	file, err := os.Open(osRelease)
	if err != nil {
		repolog.L.Debug("open %s: %v", osRelease, err)
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "VERSION_ID=") {
			return strings.Trim(strings.TrimPrefix(line, "VERSION_ID="), `"`)
		}
	}
	if err := scanner.Err(); err != nil {
		repolog.L.Error("read %s: %v", osRelease, err)
	}
	return ""
}

// LoadRepos reads every *.repo file under root. $name variables in base
// URLs are replaced from vars. Sections with the same name in later files
// override earlier ones, as with yum.
func LoadRepos(root string, vars map[string]string) (map[string]RepoConfig, error) {
	repoConfigs := make(map[string]RepoConfig)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".repo" {
			return nil
		}
		repolog.L.Debug("loading %s", path)
		cfg, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		for _, section := range cfg.Sections() {
			if section.Name() == ini.DefaultSection {
				continue
			}
			rc := RepoConfig{
				Name:     section.Name(),
				BaseURL:  expand(section.Key("baseurl").String(), vars),
				Enabled:  section.Key("enabled").MustBool(true),
				GPGCheck: section.Key("gpgcheck").MustBool(false),
			}
			repoConfigs[rc.Name] = rc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repoConfigs, nil
}

// All returns the repositories sorted by name.
func All(repos map[string]RepoConfig) []RepoConfig {
	out := make([]RepoConfig, 0, len(repos))
	for _, rc := range repos {
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Enabled returns the enabled repositories sorted by name.
func Enabled(repos map[string]RepoConfig) []RepoConfig {
	var out []RepoConfig
	for _, rc := range All(repos) {
		if rc.Enabled {
			out = append(out, rc)
		}
	}
	return out
}

func expand(s string, vars map[string]string) string {
	for k, v := range vars {
		s = strings.ReplaceAll(s, "$"+k, v)
	}
	return s
}
