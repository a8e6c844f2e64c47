package handshake

import (
	"github.com/quiclab/quic/internal/protocol"
	"github.com/quiclab/quic/internal/utils"
)

// NewInitialAEAD creates the sealer and the opener for Initial encryption / decryption.
// connID is the client's original destination connection ID.
func NewInitialAEAD(connID protocol.ConnectionID, pers protocol.Perspective, v protocol.Version) (LongHeaderSealer, LongHeaderOpener, error) {
	f := NewCryptoFactory(utils.DefaultLogger)
	clientSecret := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, v)
	serverSecret := f.MakeInitialTrafficSecret(ServerInitialLabel, connID, v)
	mySecret, otherSecret := clientSecret, serverSecret
	if pers == protocol.PerspectiveServer {
		mySecret, otherSecret = serverSecret, clientSecret
	}

	sealAead, err := f.MakeAead(initialCipherSuiteID, mySecret)
	if err != nil {
		return nil, nil, err
	}
	sealPNCipher, err := f.MakePacketNumberCipher(mySecret)
	if err != nil {
		return nil, nil, err
	}
	openAead, err := f.MakeAead(initialCipherSuiteID, otherSecret)
	if err != nil {
		return nil, nil, err
	}
	openPNCipher, err := f.MakePacketNumberCipher(otherSecret)
	if err != nil {
		return nil, nil, err
	}
	return newLongHeaderSealer(sealAead, sealPNCipher), newLongHeaderOpener(openAead, openPNCipher), nil
}
