package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded asconfig.toml.
type Manifest struct {
	Path        string
	Root        string
	Description Description
}

type manifestFile struct {
	Config            string         `toml:"config"`
	Type              string         `toml:"type"`
	Targets           []string       `toml:"targets"`
	Files             []string       `toml:"files"`
	AdditionalOptions string         `toml:"additional-options"`
	CompilerOptions   map[string]any `toml:"compiler-options"`
}

// LoadFromDir finds the nearest asconfig.toml above startDir and decodes it.
func LoadFromDir(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read manifest: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return ParseManifest(abs, data)
}

// ParseManifest decodes manifest bytes. Relative file paths are resolved
// against the directory of path.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var raw manifestFile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	kind, err := ParseKind(raw.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	configName := strings.TrimSpace(raw.Config)
	if !meta.IsDefined("config") || configName == "" {
		configName = DefaultConfigName
	}

	var compilerOptions []string
	if meta.IsDefined("compiler-options") {
		compilerOptions, err = compilerOptionArgs(meta, raw.CompilerOptions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	root := filepath.Dir(path)
	var files []string
	if len(raw.Files) > 0 {
		files = make([]string, 0, len(raw.Files))
		for _, f := range raw.Files {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if !filepath.IsAbs(f) {
				f = filepath.Join(root, filepath.FromSlash(f))
			}
			files = append(files, f)
		}
	}

	return &Manifest{
		Path: path,
		Root: root,
		Description: Description{
			ConfigName:        configName,
			Kind:              kind,
			Targets:           raw.Targets,
			CompilerOptions:   compilerOptions,
			AdditionalOptions: raw.AdditionalOptions,
			Files:             files,
		},
	}, nil
}
