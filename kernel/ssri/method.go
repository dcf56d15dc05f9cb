// Package ssri routes script calls to methods identified by the fingerprint
// of their names, and answers the introspection methods every script exposes.
package ssri

import (
	"encoding/binary"

	"github.com/xuperchain/xssri/lib/crypto/hash"
)

// names of the introspection methods, always the first three registry entries
const (
	MethodVersion    = "SSRI.version"
	MethodGetMethods = "SSRI.get_methods"
	MethodHasMethods = "SSRI.has_methods"
)

// Version is the protocol version byte returned by SSRI.version
const Version byte = 0

var (
	versionPath    = MethodPath(MethodVersion)
	getMethodsPath = MethodPath(MethodGetMethods)
	hasMethodsPath = MethodPath(MethodHasMethods)
)

// Handler serves one method. The returned bytes are the call output.
type Handler func(ctx Context) ([]byte, error)

// Method binds a method name to its handler
type Method struct {
	Name    string
	Handler Handler
}

// MethodPath is the fingerprint of a method name: the first 8 bytes of
// blake2b-256(name), read little-endian.
func MethodPath(name string) uint64 {
	sum := hash.Blake2b256([]byte(name))
	return binary.LittleEndian.Uint64(sum[:8])
}
