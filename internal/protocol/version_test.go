package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionStringer(t *testing.T) {
	require.Equal(t, "mvfst-old", VersionMVFSTOld.String())
	require.Equal(t, "mvfst", VersionMVFST.String())
	require.Equal(t, "draft-22", VersionDraft22.String())
	require.Equal(t, "draft-23", VersionDraft23.String())
	require.Equal(t, "unknown version (0x1234567)", Version(0x1234567).String())
}

func TestIsSupportedVersion(t *testing.T) {
	for _, v := range SupportedVersions {
		require.True(t, IsSupportedVersion(SupportedVersions, v))
	}
	require.False(t, IsSupportedVersion(SupportedVersions, Version(0x1a2a3a4a)))
	require.False(t, IsSupportedVersion(nil, VersionMVFST))
}
