package storage

import "strings"

// Path addresses a value inside a document, one key per level
type Path []string

// P builds a Path from its keys
func P(keys ...string) Path {
	return Path(keys)
}

// Child returns a new path one level below p
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}
