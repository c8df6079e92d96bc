package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLookupDelete(t *testing.T) {
	MockInit()

	const server = "https://as.example.com"

	require.NoError(t, Store(server, "alice", "hunter2"))

	password, err := Lookup(server, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)

	require.NoError(t, Delete(server, "alice"))

	_, err = Lookup(server, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_Missing(t *testing.T) {
	MockInit()

	_, err := Lookup("https://as.example.com", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Missing(t *testing.T) {
	MockInit()

	assert.NoError(t, Delete("https://as.example.com", "nobody"))
}

// Entries are keyed by both server and username: the same user on two
// servers gets two independent passwords.
func TestStore_PerServer(t *testing.T) {
	MockInit()

	require.NoError(t, Store("https://as1.example.com", "alice", "first"))
	require.NoError(t, Store("https://as2.example.com", "alice", "second"))

	password, err := Lookup("https://as1.example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, "first", password)

	password, err = Lookup("https://as2.example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, "second", password)
}
