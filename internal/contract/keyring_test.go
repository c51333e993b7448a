package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStoredConnectionLifecycle(t *testing.T) {
	keyring.MockInit()

	_, err := GetStoredConnection()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	assert.Error(t, SetStoredConnection(""))
	require.NoError(t, SetStoredConnection("user:pw@tcp(db:3306)/athome"))

	got, err := GetStoredConnection()
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(db:3306)/athome", got)

	require.NoError(t, DeleteStoredConnection())
	assert.ErrorIs(t, DeleteStoredConnection(), ErrCredentialsNotFound)
}

func TestResolveConnection(t *testing.T) {
	keyring.MockInit()

	conn, source, err := ResolveConnection("")
	require.NoError(t, err)
	assert.Empty(t, conn)
	assert.Equal(t, "default", source)

	conn, source, err = ResolveConnection("/tmp/profiles.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/profiles.db", conn)
	assert.Equal(t, "config", source)

	require.NoError(t, SetStoredConnection("host=pg dbname=athome"))
	conn, source, err = ResolveConnection(KeyringConnect)
	require.NoError(t, err)
	assert.Equal(t, "host=pg dbname=athome", conn)
	assert.Equal(t, "keyring", source)
}
