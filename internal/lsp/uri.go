package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath converts a file URI (or a plain path) to an absolute path.
// Non-file schemes yield "".
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	path := uri
	switch parsed.Scheme {
	case "":
	case "file":
		path = parsed.Path
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
	default:
		return ""
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func samePath(uri, path string) bool {
	p := uriToPath(uri)
	return p != "" && path != "" && filepath.Clean(p) == filepath.Clean(path)
}
