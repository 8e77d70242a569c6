package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk directory that overrides the embedded files.
const Dir = "config"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var ConfigFS embed.FS

// Load reads a config file, preferring a copy on disk under Dir.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ConfigFS.ReadFile(clean)
}

// LoadScript reads a tengo script, preferring a copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports when the disk copy of a config file last changed.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanConfigPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Tracker remembers the disk mod time of one config file, so repeated
// watcher events for an unchanged file can be skipped.
type Tracker struct {
	name string
	seen time.Time
}

func NewTracker(name string) *Tracker {
	t := &Tracker{name: name}
	t.seen, _ = ModTime(name)
	return t
}

// Changed reports whether the disk copy changed since the last call. A copy
// appearing or disappearing counts as a change.
func (t *Tracker) Changed() bool {
	if t == nil {
		return true
	}
	mod, _ := ModTime(t.name)
	if mod.Equal(t.seen) {
		return false
	}
	t.seen = mod
	return true
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
