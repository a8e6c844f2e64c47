package handshake

import (
	"crypto"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfExtract combines a salt and input keying material into a pseudorandom key.
func hkdfExtract(hash crypto.Hash, ikm, salt []byte) []byte {
	return hkdf.Extract(hash.New, ikm, salt)
}

// hkdfExpandLabel HKDF expands a label as defined in RFC 8446, section 7.1.
func hkdfExpandLabel(hash crypto.Hash, secret, context []byte, label string, length int) []byte {
	b := make([]byte, 3, 3+6+len(label)+1+len(context))
	binary.BigEndian.PutUint16(b, uint16(length))
	b[2] = uint8(6 + len(label))
	b = append(b, []byte("tls13 ")...)
	b = append(b, []byte(label)...)
	b = b[:3+6+len(label)+1]
	b[3+6+len(label)] = uint8(len(context))
	b = append(b, context...)

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(hash.New, secret, b), out); err != nil {
		// Only possible if length exceeds the HKDF output limit, which
		// means a label or length mismatch in this package.
		panic(fmt.Sprintf("quic: HKDF-Expand-Label invocation failed unexpectedly: %s", err))
	}
	return out
}
