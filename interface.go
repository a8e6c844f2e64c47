// Package quic implements the key derivation and packet protection
// subsystem of a QUIC transport: the versioned key schedule deriving
// packet protection and header protection keys from TLS secrets, and
// the record layers bridging a TLS 1.3 handshake engine into QUIC's
// frame-carried handshake model.
package quic

import (
	"github.com/quiclab/quic/internal/handshake"
	"github.com/quiclab/quic/internal/protocol"
	"github.com/quiclab/quic/internal/utils"
)

// A ConnectionID is a QUIC Connection ID, as defined in RFC 9000.
type ConnectionID = protocol.ConnectionID

// A Version is a QUIC wire version.
type Version = protocol.Version

// The supported wire versions.
const (
	VersionMVFSTOld = protocol.VersionMVFSTOld
	VersionMVFST    = protocol.VersionMVFST
	VersionDraft22  = protocol.VersionDraft22
	VersionDraft23  = protocol.VersionDraft23
)

// An EncryptionLevel identifies one of the four protection phases of a
// connection.
type EncryptionLevel = protocol.EncryptionLevel

// The encryption levels.
const (
	EncryptionInitial   = protocol.EncryptionInitial
	EncryptionHandshake = protocol.EncryptionHandshake
	Encryption0RTT      = protocol.Encryption0RTT
	Encryption1RTT      = protocol.Encryption1RTT
)

// A Perspective says if we're acting as a server or a client.
type Perspective = protocol.Perspective

// The perspectives.
const (
	PerspectiveServer = protocol.PerspectiveServer
	PerspectiveClient = protocol.PerspectiveClient
)

// An Aead seals and opens packet payloads.
type Aead = handshake.Aead

// A PacketNumberCipher protects and unprotects packet number fields.
type PacketNumberCipher = handshake.PacketNumberCipher

// A LongHeaderSealer seals packets and protects their headers.
type LongHeaderSealer = handshake.LongHeaderSealer

// A LongHeaderOpener opens packets and unprotects their headers.
type LongHeaderOpener = handshake.LongHeaderOpener

// The record layer types bridging the TLS handshake engine into
// QUIC's frame-carried handshake model.
type (
	Message                   = handshake.Message
	Content                   = handshake.Content
	ReadRecordLayer           = handshake.ReadRecordLayer
	WriteRecordLayer          = handshake.WriteRecordLayer
	PlaintextWriteRecordLayer = handshake.PlaintextWriteRecordLayer
)

// A CryptoFactory derives packet protection capabilities.
type CryptoFactory = handshake.CryptoFactory

// ErrDecryptionFailed is returned when a packet fails authentication.
var ErrDecryptionFailed = handshake.ErrDecryptionFailed

// NewCryptoFactory creates a CryptoFactory using the default logger.
func NewCryptoFactory() *CryptoFactory {
	return handshake.NewCryptoFactory(utils.DefaultLogger)
}

// NewInitialAEAD creates the sealer and the opener for Initial packets.
// connID is the client's original destination connection ID.
func NewInitialAEAD(connID ConnectionID, pers Perspective, v Version) (LongHeaderSealer, LongHeaderOpener, error) {
	return handshake.NewInitialAEAD(connID, pers, v)
}
