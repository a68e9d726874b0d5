package codec

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesisSeed    = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"
	genesisEntropy = "DEDCE9CE67B451D852FD4E846FCDE31C"
	genesisAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
)

func TestEncodeAddressAccountZero(t *testing.T) {
	addr, err := EncodeAddress(make([]byte, AccountIDLen))
	require.NoError(t, err)
	assert.Equal(t, "rrrrrrrrrrrrrrrrrrrrrhoLvTp", addr)

	id, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, AccountIDLen), id)
}

func TestEncodeAddressRejectsBadLength(t *testing.T) {
	_, err := EncodeAddress([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrLength)
}

func TestDecodeSeedGenesis(t *testing.T) {
	entropy, alg, err := DecodeSeed(genesisSeed)
	require.NoError(t, err)
	assert.Equal(t, Secp256k1, alg)
	assert.Equal(t, genesisEntropy, strings.ToUpper(hex.EncodeToString(entropy)))

	encoded, err := EncodeSeed(entropy, Secp256k1)
	require.NoError(t, err)
	assert.Equal(t, genesisSeed, encoded)
}

func TestSeedRoundTripEd25519(t *testing.T) {
	entropy, _ := hex.DecodeString(genesisEntropy)
	seed, err := EncodeSeed(entropy, Ed25519)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(seed, "sEd"), seed)

	got, alg, err := DecodeSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, Ed25519, alg)
	assert.Equal(t, entropy, got)
}

func TestDecodeSeedRejectsGarbage(t *testing.T) {
	// last character flipped breaks the checksum
	broken := genesisSeed[:len(genesisSeed)-1] + "c"
	for _, s := range []string{"", "s", "0OIl", genesisAddress, broken} {
		_, _, err := DecodeSeed(s)
		assert.Error(t, err, s)
	}
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(genesisAddress))
	assert.True(t, IsValidAddress("rrrrrrrrrrrrrrrrrrrrrhoLvTp"))

	invalid := []string{
		"",
		"xabc",
		"r",
		"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTj", // checksum
		"HHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", // prefix
		genesisAddress + "rrrrrrrr",          // length
		genesisSeed,
	}
	for _, a := range invalid {
		assert.False(t, IsValidAddress(a), a)
	}
}

func TestSHA512Half(t *testing.T) {
	a := SHA512Half([]byte("abc"), []byte("def"))
	b := SHA512Half([]byte("abcdef"))
	assert.Equal(t, a, b)
}
