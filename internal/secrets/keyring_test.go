package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestRemoteKeyLifecycle(t *testing.T) {
	keyring.MockInit()
	const account = "jobtracker:remote"

	k, err := GetRemoteKey(account)
	require.NoError(t, err)
	assert.Empty(t, k)

	require.NoError(t, SetRemoteKey(account, "s3cret"))
	k, err = GetRemoteKey(account)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", k)
	assert.Equal(t, "s3cret", RemoteKeyFunc(account)())

	require.NoError(t, DeleteRemoteKey(account))
	require.NoError(t, DeleteRemoteKey(account))
	assert.Empty(t, RemoteKeyFunc(account)())
}

func TestRemoteKeyValidation(t *testing.T) {
	keyring.MockInit()
	assert.ErrorIs(t, SetRemoteKey(" ", "x"), ErrNoAccount)
	assert.Error(t, SetRemoteKey("acct", " "))
	assert.ErrorIs(t, DeleteRemoteKey(""), ErrNoAccount)

	k, err := GetRemoteKey("")
	assert.NoError(t, err)
	assert.Empty(t, k)
}
