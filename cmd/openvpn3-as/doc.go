// Package main (cmd/openvpn3-as) downloads connection profiles from an
// OpenVPN Access Server.
//
// The tool authenticates against the server's profile REST endpoints with
// HTTP basic auth and walks the CRV1 challenge/response flow when the server
// demands additional authentication factors: each challenge prompt is shown
// on the terminal, the response is collected (hidden unless the challenge
// allows echo) and resent as the credential of the next attempt, for as many
// rounds as the server asks for.
//
// The downloaded profile is handed to the OpenVPN 3 Linux configuration
// manager over the system D-Bus and locked down so its content cannot be
// read back by unprivileged users. With --output-dir the profile is written
// to a local directory instead, for hosts without the configuration manager.
//
// Credentials can come from flags, OPENVPN_AS_* environment variables, the
// system keyring (--use-keyring) or interactive prompts. --save-password
// stores the accepted password in the keyring after a successful download.
package main
