package handshake

import (
	"crypto/cipher"

	"github.com/quiclab/quic/internal/protocol"
)

// A trafficKey is the key / IV pair expanded from a traffic secret.
// It is consumed by exactly one AEAD and wiped afterwards.
type trafficKey struct {
	key []byte
	iv  []byte
}

func (t *trafficKey) wipe() {
	for i := range t.key {
		t.key[i] = 0
	}
	for i := range t.iv {
		t.iv[i] = 0
	}
	t.key = nil
	t.iv = nil
}

type aead struct {
	aead cipher.AEAD
	iv   [aeadNonceLength]byte
}

var _ Aead = &aead{}

// newAead wraps the suite's AEAD around a traffic key.
// The underlying ciphers copy the key, so the raw bytes are wiped here.
func newAead(suite *cipherSuite, tk trafficKey) Aead {
	a := &aead{aead: suite.AEAD(tk.key)}
	copy(a.iv[:], tk.iv)
	tk.wipe()
	return a
}

func (a *aead) Seal(dst, plaintext, nonce, associatedData []byte) []byte {
	return a.aead.Seal(dst, nonce, plaintext, associatedData)
}

func (a *aead) Open(dst, ciphertext, nonce, associatedData []byte) ([]byte, error) {
	dec, err := a.aead.Open(dst, nonce, ciphertext, associatedData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return dec, nil
}

func (a *aead) Overhead() int  { return a.aead.Overhead() }
func (a *aead) NonceSize() int { return a.aead.NonceSize() }
func (a *aead) IV() []byte     { return a.iv[:] }

type longHeaderSealer struct {
	aead     Aead
	pnCipher PacketNumberCipher

	// use a single slice to avoid allocations
	nonceBuf []byte
}

var _ LongHeaderSealer = &longHeaderSealer{}

func newLongHeaderSealer(aead Aead, pnCipher PacketNumberCipher) LongHeaderSealer {
	return &longHeaderSealer{
		aead:     aead,
		pnCipher: pnCipher,
		nonceBuf: make([]byte, aead.NonceSize()),
	}
}

func (s *longHeaderSealer) Seal(dst, src []byte, pn protocol.PacketNumber, ad []byte) []byte {
	return s.aead.Seal(dst, src, xorPacketNumber(s.nonceBuf, s.aead.IV(), pn), ad)
}

func (s *longHeaderSealer) EncryptHeader(sample []byte, firstByte *byte, pnBytes []byte) {
	mask := s.pnCipher.Mask(sample)
	*firstByte ^= mask[0] & 0xf
	for i := range pnBytes {
		pnBytes[i] ^= mask[i+1]
	}
}

func (s *longHeaderSealer) Overhead() int {
	return s.aead.Overhead()
}

type longHeaderOpener struct {
	aead     Aead
	pnCipher PacketNumberCipher

	// use a single slice to avoid allocations
	nonceBuf []byte
}

var _ LongHeaderOpener = &longHeaderOpener{}

func newLongHeaderOpener(aead Aead, pnCipher PacketNumberCipher) LongHeaderOpener {
	return &longHeaderOpener{
		aead:     aead,
		pnCipher: pnCipher,
		nonceBuf: make([]byte, aead.NonceSize()),
	}
}

func (o *longHeaderOpener) Open(dst, src []byte, pn protocol.PacketNumber, ad []byte) ([]byte, error) {
	return o.aead.Open(dst, src, xorPacketNumber(o.nonceBuf, o.aead.IV(), pn), ad)
}

func (o *longHeaderOpener) DecryptHeader(sample []byte, firstByte *byte, pnBytes []byte) {
	mask := o.pnCipher.Mask(sample)
	*firstByte ^= mask[0] & 0xf
	for i := range pnBytes {
		pnBytes[i] ^= mask[i+1]
	}
}

// xorPacketNumber writes the nonce for a packet number into buf:
// the IV with the big-endian packet number XORed into its tail.
func xorPacketNumber(buf, iv []byte, pn protocol.PacketNumber) []byte {
	copy(buf, iv)
	for i := 0; i < 8; i++ {
		buf[len(buf)-8+i] ^= byte(uint64(pn) >> (56 - 8*i))
	}
	return buf
}
