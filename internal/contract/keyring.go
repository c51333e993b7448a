package contract

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring coordinates for the store connection string.
const (
	KeyringService = "athome"
	KeyringUser    = "store-db-connect"

	// KeyringConnect is the connection string value that defers to the OS keyring.
	KeyringConnect = "keyring"
)

var (
	// ErrCredentialsNotFound is returned when no connection string is stored in the keyring.
	ErrCredentialsNotFound = errors.New("contract: credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("contract: OS keyring is not available")
)

// GetStoredConnection retrieves the store connection string from the OS keyring.
func GetStoredConnection() (string, error) {
	connStr, err := keyring.Get(KeyringService, KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrCredentialsNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetStoredConnection stores the store connection string in the OS keyring.
func SetStoredConnection(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(KeyringService, KeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteStoredConnection removes the store connection string from the OS keyring.
func DeleteStoredConnection() error {
	if err := keyring.Delete(KeyringService, KeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// ResolveConnection returns the connection string to use and where it came from.
// The literal value "keyring" is looked up in the OS keyring.
func ResolveConnection(connStr string) (string, string, error) {
	switch connStr {
	case "":
		return "", "default", nil
	case KeyringConnect:
	default:
		return connStr, "config", nil
	}
	stored, err := GetStoredConnection()
	if err != nil {
		return "", "", err
	}
	return stored, "keyring", nil
}
