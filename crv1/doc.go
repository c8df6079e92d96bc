// Package crv1 implements the CRV1 challenge/response authentication
// sub-protocol spoken by OpenVPN Access Server when a plain
// username/password pair is not sufficient to release a connection profile.
//
// # Wire Grammar
//
// A dynamic challenge arrives as the Message field of the server's error
// document and has the form
//
//	CRV1:<flags>:<state_id>:<username>:<prompt>
//
// where <flags> is a comma-separated set of single-character capability
// markers, <state_id> is an opaque server-issued correlation token, the
// <username> field is carried for protocol symmetry and ignored by this
// client, and <prompt> is free-form text that may itself contain colons.
// Only the first four colons delimit fields; everything after the fourth is
// prompt text and is preserved verbatim.
//
// Two flags are defined:
//
//   - R: the server expects a response value; the user must be asked for
//     input before the request is retried.
//   - E: the user's input may be echoed while typing. Absent E, input is
//     read with echo suppressed.
//
// # Answering a Challenge
//
// A Responder displays the prompt, collects input when the R flag demands
// one, and formats the credential for the retried request:
//
//	CRV1::<state_id>::<response>
//
// The state_id is echoed back exactly as received, and the response text is
// never escaped or transformed. When no response was required (or none was
// collected) the response field is simply left empty.
//
// # Usage
//
//	ch, err := crv1.Parse(doc.Message)
//	if err != nil {
//		return err
//	}
//	responder := crv1.NewResponder(ch)
//	if _, err := responder.Run(ui); err != nil {
//		return err
//	}
//	credential = interfaces.Credential(responder.Response())
package crv1
