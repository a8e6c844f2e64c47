package handshake

import (
	"crypto"
	"crypto/tls"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/quiclab/quic/internal/protocol"
	"github.com/quiclab/quic/internal/utils"

	"github.com/stretchr/testify/require"
)

func splitHexString(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(strings.TrimPrefix(s, "0x"), " ", ""))
	require.NoError(t, err)
	return b
}

func newTestFactory() *CryptoFactory {
	return NewCryptoFactory(utils.DefaultLogger)
}

// the connection ID used in the draft appendices
const testConnID = "0x8394c8f03e515708"

func TestInitialTrafficSecretVectors(t *testing.T) {
	testCases := []struct {
		name    string
		version protocol.Version
		label   string
		secret  string
	}{
		// the draft-23 values match the published appendix
		{"draft-23/client", protocol.VersionDraft23, ClientInitialLabel, "fda3953aecc040e48b34e27ef87de3a6098ecf0e38b7e032c5c57bcbd5975b84"},
		{"draft-23/server", protocol.VersionDraft23, ServerInitialLabel, "554366b81912ff90be41f17e8022213090ab17d8149179bcadf222f29ff2ddd5"},
		{"draft-22/client", protocol.VersionDraft22, ClientInitialLabel, "7712ead935b044cb18e993a6f7a8c71119d2439ffdd3b6151ad7f9d9e77e2fb9"},
		{"draft-22/server", protocol.VersionDraft22, ServerInitialLabel, "dc33b018d3bf848d1a35d9339e2a70494e88e82504deb1a1bac5585d48214956"},
		{"mvfst-old/client", protocol.VersionMVFSTOld, ClientInitialLabel, "8a3515a14ae3c31b9c2d6d5bc58538ca5cd2baa119087143e60887428dcb52f6"},
		{"mvfst-old/server", protocol.VersionMVFSTOld, ServerInitialLabel, "47b2eaea6c266e32c0697a9e2a898bdf5c4fb3e5ac34f0e549bf2c58581a3811"},
	}

	f := newTestFactory()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			secret := f.MakeInitialTrafficSecret(tc.label, splitHexString(t, testConnID), tc.version)
			require.Equal(t, splitHexString(t, tc.secret), secret)
		})
	}
}

func TestInitialKeyAndIVVectors(t *testing.T) {
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))

	clientSecret := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionDraft23)
	key := hkdfExpandLabel(crypto.SHA256, clientSecret, nil, quicKeyLabel, 16)
	iv := hkdfExpandLabel(crypto.SHA256, clientSecret, nil, quicIVLabel, 12)
	hp := hkdfExpandLabel(crypto.SHA256, clientSecret, nil, quicHPLabel, 16)
	require.Equal(t, splitHexString(t, "af7fd7efebd21878ff66811248983694"), key)
	require.Equal(t, splitHexString(t, "8681359410a70bb9c92f0420"), iv)
	require.Equal(t, splitHexString(t, "a980b8b4fb7d9fbc13e814c23164253d"), hp)

	// the AEAD returned by MakeInitialAead is bound to the same IV
	aead, err := f.MakeInitialAead(ClientInitialLabel, connID, protocol.VersionDraft23)
	require.NoError(t, err)
	require.Equal(t, iv, aead.IV())
	require.Equal(t, 12, aead.NonceSize())
	require.Equal(t, 16, aead.Overhead())
}

func TestInitialTrafficSecretIsDeterministic(t *testing.T) {
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))
	for _, label := range []string{ClientInitialLabel, ServerInitialLabel} {
		require.Equal(t,
			f.MakeInitialTrafficSecret(label, connID, protocol.VersionMVFST),
			f.MakeInitialTrafficSecret(label, connID, protocol.VersionMVFST),
		)
	}
}

func TestInitialTrafficSecretsAreDirectional(t *testing.T) {
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))
	require.NotEqual(t,
		f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionMVFST),
		f.MakeInitialTrafficSecret(ServerInitialLabel, connID, protocol.VersionMVFST),
	)
}

func TestInitialTrafficSecretsDependOnTheVersion(t *testing.T) {
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))
	old := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionMVFSTOld)
	stable := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionMVFST)
	d22 := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionDraft22)
	d23 := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionDraft23)
	require.NotEqual(t, old, stable)
	require.NotEqual(t, stable, d23)
	// the stable version deliberately keeps the draft-22 salt
	require.Equal(t, stable, d22)
}

func TestInitialSaltFallback(t *testing.T) {
	const unknownVersion = protocol.Version(0x1a2a3a4a)

	salt, recognized := InitialSaltForVersion(unknownVersion)
	require.False(t, recognized)
	fallbackSalt, recognized := InitialSaltForVersion(protocol.VersionMVFSTOld)
	require.True(t, recognized)
	require.Equal(t, fallbackSalt, salt)

	// the derivation itself falls back to the draft-17 salt
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))
	require.Equal(t,
		f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionMVFSTOld),
		f.MakeInitialTrafficSecret(ClientInitialLabel, connID, unknownVersion),
	)
}

func TestInitialTrafficSecretEmptyConnectionID(t *testing.T) {
	f := newTestFactory()
	require.NotPanics(t, func() {
		secret := f.MakeInitialTrafficSecret(ClientInitialLabel, protocol.ConnectionID{}, protocol.VersionMVFST)
		require.Len(t, secret, crypto.SHA256.Size())
	})
}

func TestPacketNumberCipherSuiteDispatch(t *testing.T) {
	f := newTestFactory()

	pn128, err := f.MakePacketNumberCipherForSuite(tls.TLS_AES_128_GCM_SHA256)
	require.NoError(t, err)
	require.Equal(t, 16, pn128.KeyLength())

	pn256, err := f.MakePacketNumberCipherForSuite(tls.TLS_AES_256_GCM_SHA384)
	require.NoError(t, err)
	require.Equal(t, 32, pn256.KeyLength())

	for _, id := range []uint16{tls.TLS_CHACHA20_POLY1305_SHA256, tls.TLS_RSA_WITH_AES_128_GCM_SHA256, 0x1337} {
		_, err := f.MakePacketNumberCipherForSuite(id)
		require.ErrorIs(t, err, ErrNotImplemented)
	}
}

func TestPacketNumberCipherFromBaseSecret(t *testing.T) {
	f := newTestFactory()
	connID := protocol.ConnectionID(splitHexString(t, testConnID))
	baseSecret := f.MakeInitialTrafficSecret(ClientInitialLabel, connID, protocol.VersionDraft23)

	pnCipher, err := f.MakePacketNumberCipher(baseSecret)
	require.NoError(t, err)
	// AES-ECB of the sample under the expanded "quic hp" key
	mask := pnCipher.Mask(splitHexString(t, "000102030405060708090a0b0c0d0e0f"))
	require.Equal(t, splitHexString(t, "3fb927b4178e3c56bb45683f87892d68"), mask)
}

func TestMakeAeadRejectsUnknownSuites(t *testing.T) {
	f := newTestFactory()
	_, err := f.MakeAead(tls.TLS_RSA_WITH_AES_128_GCM_SHA256, make([]byte, 32))
	require.ErrorIs(t, err, ErrUnsupportedCipherSuite)
	_, err = f.MakeAead(0x1337, make([]byte, 32))
	require.ErrorIs(t, err, ErrUnsupportedCipherSuite)
}
