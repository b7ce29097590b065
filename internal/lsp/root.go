package lsp

import (
	"os"
	"path/filepath"

	"aslsp/internal/project"
)

// detectManifest finds asconfig.toml for the workspace root. When there is
// none, the expected location under root is returned with ok=false so that
// problems still have a document to attach to.
func detectManifest(workspaceRoot string) (path string, ok bool) {
	start := resolveStartDir(workspaceRoot)
	if start == "" {
		return "", false
	}
	if found, ok, err := project.FindManifest(start); err == nil && ok {
		return found, true
	}
	return filepath.Join(start, project.ManifestName), false
}

func resolveStartDir(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
