package handshake

import (
	"errors"

	"github.com/quiclab/quic/internal/protocol"
)

var (
	// ErrDecryptionFailed is returned by Aead.Open (and the openers built
	// on top of it) when the ciphertext fails authentication. A packet
	// that triggers it must be discarded; it is never fatal by itself.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrUnsupportedCipherSuite is returned when an AEAD is requested for
	// a cipher suite this package has no implementation for.
	ErrUnsupportedCipherSuite = errors.New("unsupported cipher suite")
	// ErrNotImplemented is returned when a packet number cipher is
	// requested for a cipher suite without a header protection variant.
	ErrNotImplemented = errors.New("packet number cipher not implemented")
)

// An Aead seals and opens packet payloads. It is bound to a single
// key / IV pair at construction time and holds no other state.
// The nonce passed to Seal and Open is computed by the caller by
// XORing the packet number into the IV; the Aead never derives nonces.
type Aead interface {
	// Seal encrypts and authenticates plaintext and appends the result to dst.
	Seal(dst, plaintext, nonce, associatedData []byte) []byte
	// Open decrypts and authenticates ciphertext and appends the result to dst.
	// It returns ErrDecryptionFailed if authentication fails.
	Open(dst, ciphertext, nonce, associatedData []byte) ([]byte, error)
	// Overhead is the difference between the lengths of a ciphertext and its plaintext.
	Overhead() int
	// NonceSize is the length of the nonce expected by Seal and Open.
	NonceSize() int
	// IV is the static IV the caller XORs the packet number into.
	IV() []byte
}

// A PacketNumberCipher protects and unprotects the packet number field
// (and parts of the first header byte) of a QUIC packet. It turns a
// sample of the protected payload into a keystream mask.
type PacketNumberCipher interface {
	// SetKey binds the header protection key. It must be called exactly
	// once before Mask. The key buffer is wiped.
	SetKey(key []byte) error
	// Mask computes the keystream mask for a sample. It is deterministic
	// in (key, sample) and safe for concurrent use.
	Mask(sample []byte) []byte
	// KeyLength is the length of the header protection key.
	KeyLength() int
	// SampleLength is the length of the ciphertext sample Mask consumes.
	SampleLength() int
}

// A LongHeaderSealer seals QUIC packets and protects their headers.
type LongHeaderSealer interface {
	Seal(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) []byte
	EncryptHeader(sample []byte, firstByte *byte, pnBytes []byte)
	// Overhead is the number of bytes the AEAD tag adds to the payload.
	Overhead() int
}

// A LongHeaderOpener opens QUIC packets and unprotects their headers.
type LongHeaderOpener interface {
	Open(dst, src []byte, packetNumber protocol.PacketNumber, associatedData []byte) ([]byte, error)
	DecryptHeader(sample []byte, firstByte *byte, pnBytes []byte)
}
