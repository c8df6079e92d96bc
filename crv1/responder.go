package crv1

import (
	"fmt"

	"github.com/claytonburns/asprofile/interfaces"
)

// Responder resolves a single challenge round into the credential for the
// next fetch attempt. A Responder is created fresh for every challenge and
// discarded after producing one credential.
type Responder struct {
	challenge *Challenge
	response  string
	collected bool
}

// NewResponder returns a Responder for the given challenge.
func NewResponder(ch *Challenge) *Responder {
	return &Responder{challenge: ch}
}

// Run displays the challenge prompt and, when the R flag is set, collects
// the user's response through ui. The prompt is shown unconditionally:
// servers use responseless challenges to deliver informational messages.
// It reports whether the server expects a response value.
func (r *Responder) Run(ui interfaces.Interactor) (bool, error) {
	ui.Prompt(r.challenge.Prompt)

	if !r.challenge.ResponseRequired() {
		return false, nil
	}

	var (
		input string
		err   error
	)
	if r.challenge.EchoResponse() {
		input, err = ui.ReadLine()
	} else {
		input, err = ui.ReadPassword()
	}
	if err != nil {
		return true, fmt.Errorf("could not read challenge response: %w", err)
	}

	r.response = input
	r.collected = true
	return true, nil
}

// Response formats the credential to submit on the retried request. The
// state ID is echoed verbatim and the response text is never escaped. When
// the challenge required no response, or none was ever collected, the
// response field is left empty. The two conditions produce the same string
// today but are distinct protocol situations, so both guards stay explicit.
func (r *Responder) Response() string {
	if !r.challenge.ResponseRequired() {
		return fmt.Sprintf("CRV1::%s::", r.challenge.StateID)
	}
	if !r.collected {
		return fmt.Sprintf("CRV1::%s::", r.challenge.StateID)
	}
	return fmt.Sprintf("CRV1::%s::%s", r.challenge.StateID, r.response)
}
