package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseManifestCompilerOptionsKeepFileOrder(t *testing.T) {
	data := `
config = "royale"
type = "lib"
targets = ["JSRoyale", "SWF"]
additional-options = "-x -y"

[compiler-options]
source-path = ["src", "gen"]
debug = true
define = [{ name = "CONFIG::debug", value = true }, { name = "CONFIG::ver", value = "'1'" }]
output = "bin/out.swc"
library-path = []
`
	m, err := ParseManifest("/work/app/asconfig.toml", []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{
		"-source-path+=src",
		"-source-path+=gen",
		"-debug=true",
		"-define+=CONFIG::debug,true",
		"-define+=CONFIG::ver,'1'",
		"-output=bin/out.swc",
		"-library-path=",
	}
	if !reflect.DeepEqual(m.Description.CompilerOptions, want) {
		t.Fatalf("unexpected options:\nwant %q\ngot  %q", want, m.Description.CompilerOptions)
	}
	if m.Description.ConfigName != "royale" || m.Description.Kind != KindLibrary {
		t.Fatalf("unexpected description: %+v", m.Description)
	}
	if got, ok := m.Description.FirstTarget(); !ok || got != "JSRoyale" {
		t.Fatalf("unexpected first target %q", got)
	}
	if m.Description.AdditionalOptions != "-x -y" {
		t.Fatalf("unexpected additional options %q", m.Description.AdditionalOptions)
	}
}

func TestParseManifestDefaultsAndFiles(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "app")
	path := filepath.Join(root, ManifestName)
	abs := filepath.Join(string(filepath.Separator), "abs", "Main.as")
	data := "files = [\"src/Main.mxml\", \"" + filepath.ToSlash(abs) + "\", \"  \"]\n"
	m, err := ParseManifest(path, []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	d := m.Description
	if d.ConfigName != DefaultConfigName {
		t.Fatalf("expected default config name, got %q", d.ConfigName)
	}
	if d.Kind != KindApplication {
		t.Fatalf("expected application kind, got %v", d.Kind)
	}
	if d.CompilerOptions != nil {
		t.Fatalf("expected absent compiler options, got %q", d.CompilerOptions)
	}
	wantFiles := []string{filepath.Join(root, "src", "Main.mxml"), filepath.FromSlash(filepath.ToSlash(abs))}
	if !reflect.DeepEqual(d.Files, wantFiles) {
		t.Fatalf("unexpected files:\nwant %q\ngot  %q", wantFiles, d.Files)
	}
	if m.Root != root {
		t.Fatalf("unexpected root %q", m.Root)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "bad kind", data: `type = "plugin"`, want: "unknown project type"},
		{name: "unknown key", data: `confg = "js"`, want: "unknown keys: confg"},
		{name: "nested table value", data: "[compiler-options.js]\nfoo = 1\n", want: "unsupported compiler option value"},
		{name: "define without value", data: "[compiler-options]\ndefine = [{ name = \"A\" }]\n", want: "needs a value"},
		{name: "syntax", data: `config = `, want: "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest("/p/asconfig.toml", []byte(tt.data))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, err)
			}
			if !strings.HasPrefix(err.Error(), "/p/asconfig.toml: ") {
				t.Fatalf("error must name the manifest: %v", err)
			}
		})
	}
	_, err := ParseManifest("/p/asconfig.toml", []byte(`type = "x"`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestLoadFromDirWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("config = \"js\"\nfiles = [\"src/Main.as\"]\n"), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadFromDir(nested)
	if err != nil || !ok {
		t.Fatalf("expected manifest, ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("expected root %q, got %q", root, m.Root)
	}
	if m.Description.ConfigName != "js" {
		t.Fatalf("unexpected config %q", m.Description.ConfigName)
	}
	if len(m.Description.Files) != 1 || m.Description.Files[0] != filepath.Join(root, "src", "Main.as") {
		t.Fatalf("unexpected files %q", m.Description.Files)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || gotRoot != root {
		t.Fatalf("FindProjectRoot = %q, %v, %v", gotRoot, ok, err)
	}
}

func TestLoadFromDirWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected no manifest, got %+v", m)
	}
}
