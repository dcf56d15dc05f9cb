package def

const (
	// Byte32Size is the size of lock hashes and type hashes
	Byte32Size = 32
	// MethodPathSize is the size of a method fingerprint on the wire
	MethodPathSize = 8
	// VectorHeaderSize is the u32 item count prefixing every vector
	VectorHeaderSize = 4
)

// VmVersionAny is the vm version reported by the ssri executor
const VmVersionAny = ^uint64(0)
