// Package config loads layout-name profiles for retheme.
//
// A profile file names the three layouts the engine needs:
//
//	profile: zh-CN        # optional built-in base
//	layouts:
//	  title: 标题幻灯片
//	  closing: 自定义版式
//	  default: 标题和内容
//
// YAML is the default format; files ending in .toml are read as TOML with
// the same keys.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/retheme/theme"
)

// EnvConfig names the environment variable holding the default profile path.
const EnvConfig = "RETHEME_CONFIG"

// ErrUnknownProfile is returned for a built-in profile name that does not exist.
var ErrUnknownProfile = errors.New("unknown profile")

// Layouts holds the configured layout names.
type Layouts struct {
	Title   string `yaml:"title" toml:"title"`
	Closing string `yaml:"closing" toml:"closing"`
	Default string `yaml:"default" toml:"default"`
}

// File models a profile file.
type File struct {
	Profile string  `yaml:"profile,omitempty" toml:"profile,omitempty"`
	Layouts Layouts `yaml:"layouts" toml:"layouts"`
}

// Built-in profiles. zh-CN carries the layout names of the Chinese Office
// default template.
var profiles = map[string]theme.Config{
	"zh-CN": {
		TitleLayout:   "标题幻灯片",
		ClosingLayout: "自定义版式",
		DefaultLayout: "标题和内容",
	},
	"en-US": {
		TitleLayout:   "Title Slide",
		ClosingLayout: "Custom Layout",
		DefaultLayout: "Title and Content",
	},
}

// Profile returns a built-in profile.
func Profile(name string) (theme.Config, error) {
	cfg, ok := profiles[name]
	if !ok {
		return theme.Config{}, fmt.Errorf("%w %q (have %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	return cfg, nil
}

// ProfileNames lists the built-in profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config converts the file to an engine configuration. Layout names in the
// file take precedence over the named base profile.
func (f File) Config() (theme.Config, error) {
	cfg := theme.Config{
		TitleLayout:   strings.TrimSpace(f.Layouts.Title),
		ClosingLayout: strings.TrimSpace(f.Layouts.Closing),
		DefaultLayout: strings.TrimSpace(f.Layouts.Default),
	}
	if f.Profile != "" {
		base, err := Profile(f.Profile)
		if err != nil {
			return theme.Config{}, err
		}
		cfg = cfg.Merge(base)
	}
	return cfg, nil
}

// Parse decodes profile data. source is used in error messages and its
// extension selects the format. Unknown keys are rejected.
func Parse(data []byte, source string) (File, error) {
	var f File
	if strings.EqualFold(filepath.Ext(source), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("parsing %s: %w", source, err)
		}
		return f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parsing %s: %w", source, err)
	}
	return f, nil
}

// Load reads the profile file at path and converts it to an engine
// configuration. The result is not validated; flags may still fill gaps.
func Load(path string) (theme.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return theme.Config{}, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data, path)
	if err != nil {
		return theme.Config{}, err
	}
	return f.Config()
}

// LoadDefault loads path, or the file named by RETHEME_CONFIG when path is
// empty. It returns an empty configuration when neither is set.
func LoadDefault(path string) (theme.Config, string, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return theme.Config{}, "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}
