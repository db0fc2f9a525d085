package downloader

import "blobfetch/internal/models"

type Scope int

const (
	// ScopeContainer lists the whole container.
	ScopeContainer Scope = iota
	// ScopePrefix lists every object under a prefix.
	ScopePrefix
	// ScopeSingle fetches exactly one object.
	ScopeSingle
)

func (s Scope) String() string {
	switch s {
	case ScopeContainer:
		return "container"
	case ScopePrefix:
		return "prefix"
	case ScopeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Plan is what a Request resolves to. Key is the listing prefix for
// ScopeContainer and ScopePrefix, and the object key for ScopeSingle.
type Plan struct {
	Scope Scope
	Key   string
}

// ResolveScope decides on the raw path, not the sanitized one, so a path made
// only of whitespace is still treated as "given".
func ResolveScope(req models.Request) Plan {
	switch {
	case req.Path == "":
		return Plan{Scope: ScopeContainer, Key: ""}
	case req.Recursive:
		return Plan{Scope: ScopePrefix, Key: SanitizePath(req.Path)}
	default:
		return Plan{Scope: ScopeSingle, Key: SanitizePath(req.Path)}
	}
}
