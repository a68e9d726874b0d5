package vault

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/AlexZinkM/xrp-wallet/internal/crypto"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/keys"
	"github.com/AlexZinkM/xrp-wallet/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var fastParams = crypto.Params{N: 16, R: 1, P: 1}

func newTestVault(t testing.TB) (*Vault, *storage.Store) {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, fastParams, nil), s
}

func TestSaveListRemoveScenario(t *testing.T) {
	v, _ := newTestVault(t)
	w1 := keys.Generate()

	id, err := v.EncryptAndStore(w1, []byte("secret1"), "Primary")
	require.NoError(t, err)

	records, err := v.ListRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Primary", records[0].Name)
	assert.Equal(t, w1.Address, records[0].Address)
	assert.Equal(t, id, records[0].ID)

	removed, err := v.Remove(id)
	require.NoError(t, err)
	assert.True(t, removed)

	records, err = v.ListRecords()
	require.NoError(t, err)
	assert.Empty(t, records)

	removed, err = v.Remove(id)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDecryptRoundTrip(t *testing.T) {
	v, _ := newTestVault(t)
	w := keys.Generate()

	id, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)

	got, err := v.Decrypt(id, []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestDecryptFailures(t *testing.T) {
	v, _ := newTestVault(t)
	id, err := v.EncryptAndStore(keys.Generate(), []byte("secret1"), "Primary")
	require.NoError(t, err)

	_, err = v.Decrypt(id, []byte("secret2"))
	assert.ErrorIs(t, err, errs.ErrWrongPassword)
	assert.Equal(t, errs.ErrWrongPassword.Error(), err.Error())

	_, err = v.Decrypt("missing", []byte("secret1"))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDuplicateWallet(t *testing.T) {
	v, _ := newTestVault(t)
	w := keys.Generate()

	_, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)

	again, err := keys.ImportFromSecret(w.Secret)
	require.NoError(t, err)
	_, err = v.EncryptAndStore(again, []byte("other-password"), "Copy")
	assert.ErrorIs(t, err, errs.ErrDuplicateWallet)

	records, err := v.ListRecords()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEncryptAndStoreRequiresName(t *testing.T) {
	v, _ := newTestVault(t)
	_, err := v.EncryptAndStore(keys.Generate(), []byte("secret1"), "   ")
	assert.ErrorIs(t, err, errs.ErrInvalidName)
}

func TestIDsAreNotReused(t *testing.T) {
	v, _ := newTestVault(t)
	w := keys.Generate()

	first, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)
	_, err = v.Remove(first)
	require.NoError(t, err)

	second, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestConcurrentDecrypt(t *testing.T) {
	v, _ := newTestVault(t)
	w := keys.Generate()
	id, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)

	const readers = 8
	var wg sync.WaitGroup
	results := make(chan error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := v.Decrypt(id, []byte("secret1"))
			if err == nil && *got != *w {
				err = assert.AnError
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	for err := range results {
		assert.NoError(t, err)
	}
}

func TestClearAll(t *testing.T) {
	v, _ := newTestVault(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := v.EncryptAndStore(keys.Generate(), []byte("secret1"), name)
		require.NoError(t, err)
	}
	require.NoError(t, v.ClearAll())

	records, err := v.ListRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestChangePassword(t *testing.T) {
	v, _ := newTestVault(t)
	w := keys.Generate()
	id, err := v.EncryptAndStore(w, []byte("secret1"), "Primary")
	require.NoError(t, err)

	assert.ErrorIs(t, v.ChangePassword(id, []byte("wrong!"), []byte("secret2")), errs.ErrWrongPassword)
	require.NoError(t, v.ChangePassword(id, []byte("secret1"), []byte("secret2")))

	_, err = v.Decrypt(id, []byte("secret1"))
	assert.ErrorIs(t, err, errs.ErrWrongPassword)

	got, err := v.Decrypt(id, []byte("secret2"))
	require.NoError(t, err)
	assert.Equal(t, w.Address, got.Address)
}

func TestVaultPasswordProperty(t *testing.T) {
	v, _ := newTestVault(t)
	rapid.Check(t, func(rt *rapid.T) {
		p1 := rapid.StringMatching(`[ -~]{6,24}`).Draw(rt, "p1")
		p2 := rapid.StringMatching(`[ -~]{6,24}`).Draw(rt, "p2")
		w := keys.Generate()

		id, err := v.EncryptAndStore(w, []byte(p1), "w")
		if err != nil {
			rt.Fatalf("store: %v", err)
		}
		got, err := v.Decrypt(id, []byte(p1))
		if err != nil || *got != *w {
			rt.Fatalf("round trip failed: %v", err)
		}
		if p1 != p2 {
			if _, err := v.Decrypt(id, []byte(p2)); errs.CodeOf(err) != errs.WrongPassword {
				rt.Fatalf("expected WrongPassword, got %v", err)
			}
		}
	})
}
