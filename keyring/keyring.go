// Package keyring stores Access Server passwords in the system keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// serviceName is the identifier used in the system keyring.
const serviceName = "openvpn3-as"

// ErrNotFound indicates no password is stored for the given server and
// username.
var ErrNotFound = errors.New("no stored password")

// Store saves the password for username at the given server URL.
func Store(serverURL, username, password string) error {
	if err := keyring.Set(serviceName, entryKey(serverURL, username), password); err != nil {
		return fmt.Errorf("could not store password in keyring: %w", err)
	}
	return nil
}

// Lookup retrieves the stored password for username at the given server
// URL. Returns ErrNotFound when none is stored.
func Lookup(serverURL, username string) (string, error) {
	password, err := keyring.Get(serviceName, entryKey(serverURL, username))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("could not read password from keyring: %w", err)
	}
	return password, nil
}

// Delete removes the stored password for username at the given server URL.
// Deleting an entry that does not exist is not an error.
func Delete(serverURL, username string) error {
	err := keyring.Delete(serviceName, entryKey(serverURL, username))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("could not delete password from keyring: %w", err)
	}
	return nil
}

// MockInit replaces the system keyring with an in-memory store. Tests only.
func MockInit() {
	keyring.MockInit()
}

func entryKey(serverURL, username string) string {
	return username + "@" + serverURL
}
