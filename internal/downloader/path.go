package downloader

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// SanitizePath normalizes a user typed path so it can be used as a key or a
// listing prefix. Each replacement runs once, left to right, so inputs with
// nested space/slash runs are not guaranteed to be fully normalized.
func SanitizePath(raw string) string {
	if raw == "" {
		return ""
	}

	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, " / ", "/")
	p = strings.ReplaceAll(p, "  ", " ")
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.ReplaceAll(p, " /", "/")
	p = strings.ReplaceAll(p, "/ ", "/")
	return p
}

// LocalPath maps a listed object name to its location under localDir. The
// prefix is stripped from the front of name and leading slashes are dropped;
// an object named exactly like the prefix keeps its base name.
func LocalPath(localDir, prefix, name string) (string, error) {
	rel := strings.TrimLeft(strings.TrimPrefix(name, prefix), "/")
	if rel == "" {
		rel = path.Base(name)
	}
	return joinLocal(localDir, rel)
}

// SingleLocalPath is the target for a non-recursive fetch: the last segment of
// key directly under localDir.
func SingleLocalPath(localDir, key string) (string, error) {
	if key == "" || strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrNotAFile, key)
	}
	return joinLocal(localDir, path.Base(key))
}

func joinLocal(localDir, rel string) (string, error) {
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, rel)
	}
	return filepath.Join(localDir, rel), nil
}
