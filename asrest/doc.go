// Package asrest implements the client side of the OpenVPN Access Server
// REST API used to download connection profiles.
//
// The API exposes two profile endpoints, selected by the caller's autologin
// flag:
//
//	GET /rest/GetAutologin
//	GET /rest/GetUserlogin?tls-cryptv2=1
//
// Both are authenticated with HTTP basic auth. The password field carries
// the current credential: the user's password on the first attempt, a
// formatted CRV1 response on retries (see the crv1 package). Because
// profiles carry key material, the client refuses any server URL whose
// scheme is not https.
//
// Failed requests return an XML error document which the client decodes and
// returns as the error value, preserving the Type and Message fields the
// download classifier needs to distinguish challenges from terminal
// failures. Responses that do not decode as an error document are returned
// as plain errors and never interpreted as protocol traffic.
package asrest
