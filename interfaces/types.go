package interfaces

import (
	"context"
)

// Credential is the value sent as the basic-auth password on a profile fetch
// attempt. Initially the user-supplied password; after a challenge round it
// carries a formatted CRV1 response string. The value is never inspected,
// re-encoded or transformed by the transport.
type Credential string

// ProfileFetcher performs a single authenticated profile request against the
// provisioning server.
type ProfileFetcher interface {
	// FetchProfile requests a connection profile using the given username and
	// credential. The autologin flag selects the server endpoint: the
	// autologin profile endpoint when true, the user-login profile endpoint
	// otherwise.
	//
	// On success it returns the raw profile document. On failure the returned
	// error carries the server's structured error document when the response
	// body decoded as one.
	FetchProfile(ctx context.Context, username string, credential Credential, autologin bool) ([]byte, error)
}

// Interactor is the interactive boundary used to resolve authentication
// challenges. Calls block until the user responds; no timeout is imposed.
type Interactor interface {
	// Prompt displays text to the user verbatim, without appending a newline.
	Prompt(text string)

	// ReadLine reads one line of visible input.
	ReadLine() (string, error)

	// ReadPassword reads one line of input with echo suppressed where the
	// input device supports it.
	ReadPassword() (string, error)
}

// ImportedProfile is a handle to a profile accepted by an import sink.
type ImportedProfile interface {
	// Path identifies the imported profile: a D-Bus object path for the
	// configuration manager sink, a filesystem path for the file sink.
	Path() string

	// SetLockedDown restricts the profile so that its content can no longer
	// be read back through the sink by unprivileged users.
	SetLockedDown(ctx context.Context, lockedDown bool) error
}

// ImportSink accepts a downloaded profile for persistence.
type ImportSink interface {
	// Import stores the profile under the given name. The autologin flag
	// records how the profile was obtained; persistent controls whether the
	// profile survives a configuration manager restart.
	Import(ctx context.Context, name string, profile []byte, autologin, persistent bool) (ImportedProfile, error)
}
