// Package hasher provides the content hashing behind variant filenames
// and palette identity.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length. Variant filenames carry 16 hex chars
// (the full 64 bits), collision-safe for practical asset counts.
func ContentHash(data []byte, hexLen int) string {
	full := hexUint64(xxhash.Sum64(data))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	full := hexUint64(h.Sum64())
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen], nil
	}
	return full, nil
}

// PaletteHash fingerprints palette entries packed as big-endian ARGB
// words. Variants sharing a fingerprint carry exactly the same colors
// in the same order.
func PaletteHash(colors []uint32) string {
	buf := make([]byte, 4*len(colors))
	for i, c := range colors {
		binary.BigEndian.PutUint32(buf[i*4:], c)
	}
	return ContentHash(buf, 16)
}

func hexUint64(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
