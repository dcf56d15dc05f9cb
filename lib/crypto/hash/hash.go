package hash

import (
	"github.com/minio/blake2b-simd"
)

const (
	// Blake2bSize is the digest size of the chain default hash
	Blake2bSize = 32
)

// CkbPersonal is the blake2b personalization of the chain default hash
var CkbPersonal = []byte("ckb-default-hash")

// Blake2b256 returns blake2b-256 of data personalized with "ckb-default-hash"
func Blake2b256(data ...[]byte) [Blake2bSize]byte {
	h, err := blake2b.New(&blake2b.Config{Size: Blake2bSize, Person: CkbPersonal})
	if err != nil {
		// Size and Person are constants within blake2b limits
		panic(err)
	}
	for _, d := range data {
		h.Write(d)
	}

	var out [Blake2bSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
