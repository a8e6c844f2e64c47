package handshake

import (
	"bytes"

	"github.com/quiclab/quic/internal/protocol"
)

// ContentType is the TLS record content type of a message.
type ContentType uint8

const (
	// ContentTypeAlert is the content type of a TLS alert
	ContentTypeAlert ContentType = 21
	// ContentTypeHandshake is the content type of a TLS handshake message
	ContentTypeHandshake ContentType = 22
)

// A Message is a TLS message as exchanged with the handshake engine.
type Message struct {
	Type     ContentType
	Fragment []byte
}

// A Content is the output of a write record layer: the raw bytes of a
// message tagged with its content type and encryption level. QUIC puts
// Data into CRYPTO frames instead of TLS records.
type Content struct {
	Data            []byte
	ContentType     ContentType
	EncryptionLevel protocol.EncryptionLevel
}

// A ReadRecordLayer produces TLS messages for the handshake engine.
// QUIC carries handshake bytes directly in CRYPTO frames, so no record
// framing is parsed: the entire buffer is consumed as one
// handshake-typed message, and an empty buffer yields no message.
type ReadRecordLayer interface {
	ReadMessage(buf *bytes.Buffer) *Message
	EncryptionLevel() protocol.EncryptionLevel
}

// A WriteRecordLayer accepts TLS messages from the handshake engine and
// tags them with the encryption level it was constructed with. It
// applies no protection; the transport protects the resulting bytes
// with the Aead for that level.
type WriteRecordLayer interface {
	WriteMessage(msg Message) Content
	EncryptionLevel() protocol.EncryptionLevel
}

// A PlaintextWriteRecordLayer additionally writes the first flight.
type PlaintextWriteRecordLayer interface {
	WriteRecordLayer
	// WriteInitialClientHello tags an encoded ClientHello as a handshake
	// message and passes it through the regular write path.
	WriteInitialClientHello(encoded []byte) Content
}

func readMessage(buf *bytes.Buffer) *Message {
	if buf.Len() == 0 {
		return nil
	}
	fragment := make([]byte, buf.Len())
	buf.Read(fragment)
	return &Message{Type: ContentTypeHandshake, Fragment: fragment}
}

type plaintextReadRecordLayer struct{}

var _ ReadRecordLayer = &plaintextReadRecordLayer{}

func (r *plaintextReadRecordLayer) ReadMessage(buf *bytes.Buffer) *Message { return readMessage(buf) }

func (r *plaintextReadRecordLayer) EncryptionLevel() protocol.EncryptionLevel {
	return protocol.EncryptionInitial
}

type encryptedReadRecordLayer struct {
	encryptionLevel protocol.EncryptionLevel
}

var _ ReadRecordLayer = &encryptedReadRecordLayer{}

func (r *encryptedReadRecordLayer) ReadMessage(buf *bytes.Buffer) *Message { return readMessage(buf) }

func (r *encryptedReadRecordLayer) EncryptionLevel() protocol.EncryptionLevel {
	return r.encryptionLevel
}

type plaintextWriteRecordLayer struct{}

var _ PlaintextWriteRecordLayer = &plaintextWriteRecordLayer{}

func (w *plaintextWriteRecordLayer) WriteMessage(msg Message) Content {
	return Content{
		Data:            msg.Fragment,
		ContentType:     msg.Type,
		EncryptionLevel: w.EncryptionLevel(),
	}
}

func (w *plaintextWriteRecordLayer) WriteInitialClientHello(encoded []byte) Content {
	return w.WriteMessage(Message{Type: ContentTypeHandshake, Fragment: encoded})
}

func (w *plaintextWriteRecordLayer) EncryptionLevel() protocol.EncryptionLevel {
	return protocol.EncryptionInitial
}

type encryptedWriteRecordLayer struct {
	encryptionLevel protocol.EncryptionLevel
}

var _ WriteRecordLayer = &encryptedWriteRecordLayer{}

func (w *encryptedWriteRecordLayer) WriteMessage(msg Message) Content {
	return Content{
		Data:            msg.Fragment,
		ContentType:     msg.Type,
		EncryptionLevel: w.encryptionLevel,
	}
}

func (w *encryptedWriteRecordLayer) EncryptionLevel() protocol.EncryptionLevel {
	return w.encryptionLevel
}
