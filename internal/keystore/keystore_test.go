package keystore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadao/arseed-go/internal/keystore"
)

const testSecret = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func TestEncryptDecryptRoundtrip(t *testing.T) {
	ks, err := keystore.Encrypt(testSecret, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, 3, ks.Version)
	assert.NotEmpty(t, ks.ID)
	assert.Equal(t, "aes-128-ctr", ks.Crypto.Cipher)
	assert.Equal(t, "scrypt", ks.Crypto.KDF)

	secret, err := keystore.Decrypt(ks, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, testSecret, secret)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	ks, err := keystore.Encrypt(testSecret, "right")
	require.NoError(t, err)

	_, err = keystore.Decrypt(ks, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAC mismatch")
}

func TestSaveLoad(t *testing.T) {
	ks, err := keystore.Encrypt(testSecret, "pass")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, keystore.Save(path, ks))

	loaded, err := keystore.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ks.ID, loaded.ID)

	secret, err := keystore.Decrypt(loaded, "pass")
	require.NoError(t, err)
	assert.Equal(t, testSecret, secret)
}
