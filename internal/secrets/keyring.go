package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "jobtracker"
)

var ErrNoAccount = errors.New("keyring account name is empty")

// GetRemoteKey returns the access key for the remote document store, or ""
// when none is stored. Requests then go out unauthenticated.
func GetRemoteKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", nil
	}
	key, err := keyring.Get(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func SetRemoteKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return ErrNoAccount
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("access key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

// DeleteRemoteKey is a no-op when nothing is stored.
func DeleteRemoteKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return ErrNoAccount
	}
	err := keyring.Delete(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// RemoteKeyFunc adapts the keychain lookup to the remote's key hook. Lookup
// errors read as no key.
func RemoteKeyFunc(keyringAccount string) func() string {
	return func() string {
		k, _ := GetRemoteKey(keyringAccount)
		return k
	}
}
