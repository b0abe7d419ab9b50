package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Load reads the arena configuration.
// Search order: customPath -> ~/.pong/configs/arena.{yaml,toml} ->
// ./configs/arena.{yaml,toml} -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (File, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, dir := range searchDirs() {
		for _, name := range []string{"arena.yaml", "arena.toml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if f, err := LoadFile(path); err == nil {
				return f, nil
			}
		}
	}

	f, err := decode(defaultArenaYAML, FormatYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	f.Source = "embedded"
	return f, nil
}

// LoadFile reads and validates a single config file. The format follows
// the extension: .toml is TOML, anything else YAML.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	f, err := decode(data, formatFor(path))
	if err != nil {
		return File{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	f.Source = path

	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Encode renders a file in the given format.
func Encode(f File, format string) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		out, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
		}
		return out, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, fmt.Errorf("config: cannot encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("config: unknown format %q (want yaml or toml)", format)
	}
}

// decode parses data on top of the defaults and rejects unknown keys.
func decode(data []byte, format string) (File, error) {
	f := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return File{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, err
		}
	}

	return f, nil
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// searchDirs lists the directories checked when no path is given.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".pong", "configs"))
	}
	return append(dirs, "configs")
}
