package handshake

import (
	"crypto/tls"
	"fmt"

	"github.com/quiclab/quic/internal/protocol"
	"github.com/quiclab/quic/internal/utils"
)

// The initial secret salts, one per wire version. Draft-22 and the
// stable mvfst version share a salt: the deployment kept the key
// schedule it was interoperability-tested against.
var (
	saltDraft17 = []byte{0xef, 0x4f, 0xb0, 0xab, 0xb4, 0x74, 0x70, 0xc4, 0x1b, 0xef, 0xcf, 0x80, 0x31, 0x33, 0x4f, 0xae, 0x48, 0x5e, 0x09, 0xa0}
	saltDraft22 = []byte{0x7f, 0xbc, 0xdb, 0x0e, 0x7c, 0x66, 0xbb, 0xe9, 0x19, 0x3a, 0x96, 0xcd, 0x21, 0x51, 0x9e, 0xbd, 0x7a, 0x02, 0x64, 0x4a}
	saltDraft23 = []byte{0xc3, 0xee, 0xf7, 0x12, 0xc7, 0x2e, 0xbb, 0x5a, 0x11, 0xa7, 0xd2, 0x43, 0x2b, 0xb4, 0x63, 0x65, 0xbe, 0xf9, 0xf5, 0x02}
)

// The labels of the QUIC key schedule. They must match the peer byte
// for byte; RFC 9001, sections 5.1 and 5.2.
const (
	// ClientInitialLabel derives the client's Initial traffic secret.
	ClientInitialLabel = "client in"
	// ServerInitialLabel derives the server's Initial traffic secret.
	ServerInitialLabel = "server in"

	quicKeyLabel = "quic key"
	quicIVLabel  = "quic iv"
	quicHPLabel  = "quic hp"
)

// Initial packets are always protected with AES-128-GCM-SHA256,
// regardless of the cipher suite negotiated for later levels.
const initialCipherSuiteID = tls.TLS_AES_128_GCM_SHA256

// InitialSaltForVersion returns the salt used to derive the initial
// secret for a wire version. For unrecognized versions it returns the
// draft-17 salt and reports recognized == false; callers that don't
// want to interoperate with greased or future versions should treat
// that as a negotiation failure instead of deriving keys.
func InitialSaltForVersion(v protocol.Version) (salt []byte, recognized bool) {
	switch v {
	case protocol.VersionMVFSTOld:
		return saltDraft17, true
	case protocol.VersionMVFST, protocol.VersionDraft22:
		return saltDraft22, true
	case protocol.VersionDraft23:
		return saltDraft23, true
	}
	return saltDraft17, false
}

// A CryptoFactory derives the packet protection capabilities of a
// connection: traffic secrets, AEADs, packet number ciphers, and the
// record layers the handshake engine is configured with.
// It is stateless and can be shared between connections.
type CryptoFactory struct {
	logger utils.Logger
}

// NewCryptoFactory creates a CryptoFactory.
func NewCryptoFactory(logger utils.Logger) *CryptoFactory {
	return &CryptoFactory{logger: logger}
}

// MakeInitialTrafficSecret derives the Initial traffic secret for one
// direction. label is ClientInitialLabel or ServerInitialLabel, and
// destConnID is the client's original destination connection ID.
// The derivation is deterministic and cannot fail, including for a
// zero-length connection ID.
func (f *CryptoFactory) MakeInitialTrafficSecret(label string, destConnID protocol.ConnectionID, v protocol.Version) []byte {
	salt, recognized := InitialSaltForVersion(v)
	if !recognized {
		f.logger.Infof("no initial salt for %s, falling back to the draft-17 salt", v)
	}
	suite, err := getCipherSuite(initialCipherSuiteID)
	if err != nil {
		panic(err) // the fixed Initial suite is always registered
	}
	initialSecret := hkdfExtract(suite.Hash, destConnID.Bytes(), salt)
	return hkdfExpandLabel(suite.Hash, initialSecret, nil, label, suite.Hash.Size())
}

// MakeInitialAead derives the Initial traffic secret for one direction
// and expands it into a ready-to-use AEAD.
func (f *CryptoFactory) MakeInitialAead(label string, destConnID protocol.ConnectionID, v protocol.Version) (Aead, error) {
	trafficSecret := f.MakeInitialTrafficSecret(label, destConnID, v)
	return f.MakeAead(initialCipherSuiteID, trafficSecret)
}

// MakeAead expands a traffic secret into key and IV for the given
// cipher suite and returns an AEAD bound to them. The intermediate key
// material is wiped once the AEAD owns it.
func (f *CryptoFactory) MakeAead(suiteID uint16, trafficSecret []byte) (Aead, error) {
	suite, err := getCipherSuite(suiteID)
	if err != nil {
		return nil, err
	}
	key := hkdfExpandLabel(suite.Hash, trafficSecret, nil, quicKeyLabel, suite.KeyLen)
	iv := hkdfExpandLabel(suite.Hash, trafficSecret, nil, quicIVLabel, suite.IVLen())
	return newAead(suite, trafficKey{key: key, iv: iv}), nil
}

// MakePacketNumberCipher expands a traffic secret into the header
// protection key for the Initial cipher suite and returns a packet
// number cipher with the key installed.
func (f *CryptoFactory) MakePacketNumberCipher(baseSecret []byte) (PacketNumberCipher, error) {
	pnCipher, err := f.MakePacketNumberCipherForSuite(initialCipherSuiteID)
	if err != nil {
		return nil, err
	}
	suite, err := getCipherSuite(initialCipherSuiteID)
	if err != nil {
		return nil, err
	}
	key := hkdfExpandLabel(suite.Hash, baseSecret, nil, quicHPLabel, pnCipher.KeyLength())
	if err := pnCipher.SetKey(key); err != nil {
		return nil, err
	}
	return pnCipher, nil
}

// MakePacketNumberCipherForSuite returns the packet number cipher
// variant for a cipher suite, without a key installed.
func (f *CryptoFactory) MakePacketNumberCipherForSuite(suiteID uint16) (PacketNumberCipher, error) {
	switch suiteID {
	case tls.TLS_AES_128_GCM_SHA256:
		return newAES128PacketNumberCipher(), nil
	case tls.TLS_AES_256_GCM_SHA384:
		return newAES256PacketNumberCipher(), nil
	default:
		return nil, fmt.Errorf("%w for cipher suite %#x", ErrNotImplemented, suiteID)
	}
}

// MakePlaintextReadRecordLayer constructs the record layer reading the
// unprotected first flight.
func (f *CryptoFactory) MakePlaintextReadRecordLayer() ReadRecordLayer {
	return &plaintextReadRecordLayer{}
}

// MakePlaintextWriteRecordLayer constructs the record layer writing the
// unprotected first flight.
func (f *CryptoFactory) MakePlaintextWriteRecordLayer() PlaintextWriteRecordLayer {
	return &plaintextWriteRecordLayer{}
}

// MakeEncryptedReadRecordLayer constructs the record layer reading
// handshake bytes at the given encryption level.
func (f *CryptoFactory) MakeEncryptedReadRecordLayer(el protocol.EncryptionLevel) ReadRecordLayer {
	return &encryptedReadRecordLayer{encryptionLevel: el}
}

// MakeEncryptedWriteRecordLayer constructs the record layer writing
// handshake bytes at the given encryption level.
func (f *CryptoFactory) MakeEncryptedWriteRecordLayer(el protocol.EncryptionLevel) WriteRecordLayer {
	return &encryptedWriteRecordLayer{encryptionLevel: el}
}
