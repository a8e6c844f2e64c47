package handshake

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Both supported variants run AES in ECB mode over a single block of
// sample; they differ only in key length.
type aesPacketNumberCipher struct {
	keyLen int
	block  cipher.Block
}

var (
	_ PacketNumberCipher = &aesPacketNumberCipher{}
)

func newAES128PacketNumberCipher() PacketNumberCipher {
	return &aesPacketNumberCipher{keyLen: 16}
}

func newAES256PacketNumberCipher() PacketNumberCipher {
	return &aesPacketNumberCipher{keyLen: 32}
}

func (c *aesPacketNumberCipher) SetKey(key []byte) error {
	if c.block != nil {
		return fmt.Errorf("packet number cipher: key already set")
	}
	if len(key) != c.keyLen {
		return fmt.Errorf("packet number cipher: invalid key length %d, expected %d", len(key), c.keyLen)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	c.block = block
	for i := range key {
		key[i] = 0
	}
	return nil
}

func (c *aesPacketNumberCipher) Mask(sample []byte) []byte {
	if c.block == nil {
		panic("packet number cipher: no key set")
	}
	if len(sample) != c.SampleLength() {
		panic("invalid sample size")
	}
	mask := make([]byte, aes.BlockSize)
	c.block.Encrypt(mask, sample)
	return mask
}

func (c *aesPacketNumberCipher) KeyLength() int { return c.keyLen }

func (c *aesPacketNumberCipher) SampleLength() int { return aes.BlockSize }
