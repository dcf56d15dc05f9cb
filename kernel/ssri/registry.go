package ssri

import (
	"fmt"

	"github.com/xuperchain/xssri/kernel/def"
)

// Registry is the immutable method table of a script. Only fingerprints are
// kept, the method names are dropped once hashed.
type Registry struct {
	// [u32 LE count][count x u64 LE], introspection methods first
	table    []byte
	paths    []uint64
	handlers []Handler
}

// NewRegistry builds the table from the declared methods, in declaration
// order after the three introspection methods. Two names sharing a
// fingerprint are rejected with def.ErrDuplicateMethod.
func NewRegistry(methods ...Method) (*Registry, error) {
	paths := make([]uint64, 0, len(methods)+3)
	paths = append(paths, versionPath, getMethodsPath, hasMethodsPath)
	handlers := make([]Handler, 0, len(methods))

	seen := map[uint64]string{
		versionPath:    MethodVersion,
		getMethodsPath: MethodGetMethods,
		hasMethodsPath: MethodHasMethods,
	}
	for _, m := range methods {
		if m.Handler == nil {
			return nil, fmt.Errorf("method %s has no handler", m.Name)
		}
		path := MethodPath(m.Name)
		if prev, ok := seen[path]; ok {
			return nil, def.ErrDuplicateMethod.More("%s and %s share path %#016x", prev, m.Name, path)
		}
		seen[path] = m.Name

		paths = append(paths, path)
		handlers = append(handlers, m.Handler)
	}

	return &Registry{
		table:    EncodeU64Vector(paths),
		paths:    paths,
		handlers: handlers,
	}, nil
}

// Table returns a copy of the encoded table
func (r *Registry) Table() []byte {
	return append([]byte{}, r.table...)
}

// Len returns the number of entries, introspection methods included
func (r *Registry) Len() int {
	return len(r.paths)
}

// Paths returns a copy of the fingerprints in table order
func (r *Registry) Paths() []uint64 {
	return append([]uint64{}, r.paths...)
}

// Has reports whether path is in the table
func (r *Registry) Has(path uint64) bool {
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}

// lookup returns the handler of a declared method, in table order
func (r *Registry) lookup(path uint64) (Handler, bool) {
	for i, p := range r.paths[3:] {
		if p == path {
			return r.handlers[i], true
		}
	}
	return nil, false
}
