package keys

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	genesisSeed    = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"
	genesisAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
)

func TestImportGenesisSeed(t *testing.T) {
	w, err := ImportFromSecret(genesisSeed)
	require.NoError(t, err)
	assert.Equal(t, genesisAddress, w.Address)
	assert.Equal(t, genesisSeed, w.Secret)
	assert.Len(t, w.PublicKey, 66)
	assert.True(t, strings.HasPrefix(w.PrivateKey, "00"))
}

func TestImportKnownSeeds(t *testing.T) {
	tests := []struct {
		name      string
		seed      string
		alg       codec.Algorithm
		address   string
		publicKey string
	}{
		{
			name:      "ed25519",
			seed:      "sEdSKaCy2JT7JaM7v95H9SxkhP9wS2r",
			alg:       codec.Ed25519,
			address:   "rLUEXYuLiQptky37CqLcm9USQpPiz5rkpD",
			publicKey: "ED01FA53FA5A7E77798F882ECE20B1ABC00BB358A9E55A202D0D0676BD0CE37A63",
		},
		{
			name:      "secp256k1",
			seed:      "sp5fghtJtpUorTwvof1NpDXAzNwf5",
			alg:       codec.Secp256k1,
			address:   "rU6K7V3Po4snVhBBaU29sesqs2qTQJWDw1",
			publicKey: "030D58EB48B4420B1F7B9DF55087E0E29FEF0E8468F9A6825B01CA2C361042D435",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := FromSecret(tt.seed)
			require.NoError(t, err)
			assert.Equal(t, tt.alg, kp.Algorithm)
			assert.Equal(t, tt.address, kp.Address)

			w := kp.Wallet()
			assert.Equal(t, tt.publicKey, w.PublicKey)
			assert.Equal(t, tt.seed, w.Secret)
		})
	}
}

func TestGenerateDefaultsToEd25519(t *testing.T) {
	w := Generate()
	assert.True(t, strings.HasPrefix(w.Secret, "sEd"), w.Secret)
	assert.True(t, strings.HasPrefix(w.PublicKey, "ED"), w.PublicKey)
	assert.True(t, strings.HasPrefix(w.PrivateKey, "ED"), w.PrivateKey)
	assert.True(t, codec.IsValidAddress(w.Address), w.Address)
}

func TestGenerateIsRandom(t *testing.T) {
	a, b := Generate(), Generate()
	assert.NotEqual(t, a.Secret, b.Secret)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestImportIsInverseOfGenerate(t *testing.T) {
	for _, alg := range []codec.Algorithm{codec.Ed25519, codec.Secp256k1} {
		w := GenerateWithAlgorithm(alg)
		got, err := ImportFromSecret(w.Secret)
		require.NoError(t, err)
		assert.Equal(t, *w, *got, alg)
	}
}

func TestImportInverseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entropy := rapid.SliceOfN(rapid.Byte(), codec.EntropyLen, codec.EntropyLen).Draw(t, "entropy")
		alg := rapid.SampledFrom([]codec.Algorithm{codec.Ed25519, codec.Secp256k1}).Draw(t, "alg")

		kp, err := FromEntropy(entropy, alg)
		if err != nil {
			t.Fatalf("derive: %v", err)
		}
		w, err := ImportFromSecret(kp.Seed)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if w.Address != kp.Address {
			t.Fatalf("address mismatch: %s != %s", w.Address, kp.Address)
		}
	})
}

func TestImportFromSecretInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-seed", genesisAddress, "snoPBrXtMeMyMHUVTgbuqAfg1SUTc", "s0000"} {
		_, err := ImportFromSecret(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, errs.ErrInvalidSecret, s)
	}
}

func TestSignAndVerify(t *testing.T) {
	msg := []byte("payment bytes")
	for _, alg := range []codec.Algorithm{codec.Ed25519, codec.Secp256k1} {
		w := GenerateWithAlgorithm(alg)
		kp, err := FromSecret(w.Secret)
		require.NoError(t, err)

		sig := kp.Sign(msg)
		assert.True(t, kp.Verify(msg, sig), alg)
		assert.False(t, kp.Verify([]byte("other bytes"), sig), alg)
	}
}

func TestSecp256k1SignatureIsDeterministic(t *testing.T) {
	kp, err := FromSecret(genesisSeed)
	require.NoError(t, err)
	assert.Equal(t, kp.Sign([]byte("m")), kp.Sign([]byte("m")))
}
