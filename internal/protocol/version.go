package protocol

import "fmt"

// Version is a QUIC wire version tag, as it appears in long header packets.
type Version uint32

// The version numbers, making grepping easier
const (
	// VersionMVFSTOld is the legacy deployment version. It predates the
	// draft-22 key schedule and keeps the draft-17 initial salt.
	VersionMVFSTOld Version = 0xfaceb000
	// VersionMVFST is the stable deployment version. It shares the
	// draft-22 initial salt with VersionDraft22.
	VersionMVFST   Version = 0xfaceb002
	VersionDraft22 Version = 0xff000016
	VersionDraft23 Version = 0xff000017
)

// SupportedVersions lists the versions that the transport negotiates,
// sorted by preference (descending).
var SupportedVersions = []Version{VersionMVFST, VersionDraft23, VersionDraft22, VersionMVFSTOld}

// IsSupportedVersion returns true if the server supports this version
func IsSupportedVersion(supported []Version, v Version) bool {
	for _, t := range supported {
		if t == v {
			return true
		}
	}
	return false
}

func (v Version) String() string {
	switch v {
	case VersionMVFSTOld:
		return "mvfst-old"
	case VersionMVFST:
		return "mvfst"
	case VersionDraft22:
		return "draft-22"
	case VersionDraft23:
		return "draft-23"
	default:
		return fmt.Sprintf("unknown version (%#x)", uint32(v))
	}
}
