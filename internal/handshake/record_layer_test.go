package handshake

import (
	"bytes"

	"github.com/quiclab/quic/internal/protocol"
	"github.com/quiclab/quic/internal/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Record Layers", func() {
	var factory *CryptoFactory

	BeforeEach(func() {
		factory = NewCryptoFactory(utils.DefaultLogger)
	})

	Context("reading", func() {
		var layers map[string]ReadRecordLayer

		BeforeEach(func() {
			layers = map[string]ReadRecordLayer{
				"plaintext": factory.MakePlaintextReadRecordLayer(),
				"encrypted": factory.MakeEncryptedReadRecordLayer(protocol.EncryptionHandshake),
			}
		})

		It("returns no message for an empty buffer", func() {
			for _, layer := range layers {
				Expect(layer.ReadMessage(&bytes.Buffer{})).To(BeNil())
			}
		})

		It("consumes the entire buffer as one handshake message", func() {
			for _, layer := range layers {
				buf := bytes.NewBuffer([]byte("fake handshake bytes"))
				msg := layer.ReadMessage(buf)
				Expect(msg).ToNot(BeNil())
				Expect(msg.Type).To(Equal(ContentTypeHandshake))
				Expect(msg.Fragment).To(Equal([]byte("fake handshake bytes")))
				Expect(buf.Len()).To(BeZero())
			}
		})

		It("is tagged with the encryption level it was constructed with", func() {
			Expect(layers["plaintext"].EncryptionLevel()).To(Equal(protocol.EncryptionInitial))
			Expect(layers["encrypted"].EncryptionLevel()).To(Equal(protocol.EncryptionHandshake))
			Expect(factory.MakeEncryptedReadRecordLayer(protocol.Encryption1RTT).EncryptionLevel()).To(Equal(protocol.Encryption1RTT))
		})
	})

	Context("writing", func() {
		It("passes the message bytes through, tagged with type and level", func() {
			layer := factory.MakeEncryptedWriteRecordLayer(protocol.Encryption1RTT)
			content := layer.WriteMessage(Message{Type: ContentTypeHandshake, Fragment: []byte("NewSessionTicket")})
			Expect(content.Data).To(Equal([]byte("NewSessionTicket")))
			Expect(content.ContentType).To(Equal(ContentTypeHandshake))
			Expect(content.EncryptionLevel).To(Equal(protocol.Encryption1RTT))
		})

		It("preserves the content type of non-handshake messages", func() {
			layer := factory.MakeEncryptedWriteRecordLayer(protocol.EncryptionHandshake)
			content := layer.WriteMessage(Message{Type: ContentTypeAlert, Fragment: []byte{0x2, 0x28}})
			Expect(content.ContentType).To(Equal(ContentTypeAlert))
			Expect(content.EncryptionLevel).To(Equal(protocol.EncryptionHandshake))
		})

		It("writes the plaintext flight at the Initial level", func() {
			layer := factory.MakePlaintextWriteRecordLayer()
			content := layer.WriteMessage(Message{Type: ContentTypeHandshake, Fragment: []byte("ServerHello")})
			Expect(content.EncryptionLevel).To(Equal(protocol.EncryptionInitial))
		})

		It("tags an initial ClientHello as a handshake message", func() {
			layer := factory.MakePlaintextWriteRecordLayer()
			content := layer.WriteInitialClientHello([]byte("encoded ClientHello"))
			Expect(content.Data).To(Equal([]byte("encoded ClientHello")))
			Expect(content.ContentType).To(Equal(ContentTypeHandshake))
			Expect(content.EncryptionLevel).To(Equal(protocol.EncryptionInitial))
		})
	})
})
