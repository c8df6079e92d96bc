// Package download drives the retrieval of a connection profile from an
// Access Server, including the CRV1 challenge rounds the server may demand
// before releasing it.
//
// # Classification
//
// Every fetch attempt ends in exactly one Outcome, produced by Classify:
//
//   - ResultSuccess: the server released the profile.
//   - ResultChallenge: the server answered with a CRV1 challenge; the
//     request must be retried with a formatted challenge response as the
//     credential.
//   - ResultFatal: the attempt failed terminally. Transport errors and
//     responses that do not decode as the server's error document are
//     always fatal, since they could indicate network failure rather than
//     protocol failure.
//
// # The Controller
//
// Controller runs the fetch loop as an explicit state machine:
//
//	Attempting ──success──────────────▶ Succeeded
//	    │  ▲                              (terminal)
//	    │  └──────── credential ◀─┐
//	    ├──challenge──▶ AwaitingChallengeResponse
//	    │
//	    └──fatal──────────────────────▶ FatalFailure
//	                                      (terminal)
//
// There is no bound on the number of challenge rounds: the server may issue
// another challenge after each response. A Controller is single use; create
// a fresh one for every download.
package download
