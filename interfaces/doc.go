// Package interfaces defines the core interfaces and types for the Access
// Server profile downloader, separating the contracts between components
// from their implementations.
//
// # Capability Interfaces
//
// ProfileFetcher: Performs one authenticated profile fetch against the
// Access Server REST API. Implemented by the asrest package; mocked by the
// download package for tests.
//
// Interactor: The interactive boundary used to display challenge prompts
// and collect user input, visibly or with echo suppressed. Implemented by
// the terminal package.
//
// ImportSink: Accepts a downloaded profile for persistence and returns a
// handle to the imported profile. Implemented by the importer package for
// both the OpenVPN 3 configuration manager (D-Bus) and a local directory.
//
// # Types
//
// Credential: The value submitted as the basic-auth password on a fetch
// attempt. Starts out as the user-supplied password and becomes a formatted
// CRV1 response once a challenge round has been answered. It is opaque to
// every component except the challenge responder that produced it.
package interfaces
