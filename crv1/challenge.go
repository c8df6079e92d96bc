package crv1

import (
	"errors"
	"fmt"
	"strings"
)

// Prefix is the literal marker every CRV1 challenge message starts with.
const Prefix = "CRV1:"

// Challenge flags.
const (
	// FlagResponseRequired (R) marks a challenge the server expects an
	// answer to.
	FlagResponseRequired = "R"

	// FlagEchoResponse (E) permits echoing the user's input while typing.
	FlagEchoResponse = "E"
)

// ErrMalformedChallenge indicates a challenge string that does not follow
// the CRV1 grammar. It is never defaulted away: a challenge that cannot be
// parsed terminates the download.
var ErrMalformedChallenge = errors.New("malformed CRV1 challenge")

// Challenge is one authentication step requested by the server.
type Challenge struct {
	// Flags is the set of capability markers from the second field.
	Flags []string

	// StateID is the opaque server-issued correlation token. It is stored
	// and echoed back verbatim, never inspected or transformed.
	StateID string

	// Prompt is the text to display to the user. This is everything after
	// the fourth colon of the raw challenge and may contain colons itself.
	Prompt string
}

// Parse parses a raw challenge string of the form
// CRV1:<flags>:<state_id>:<username>:<prompt>. The string is split on the
// first four colons only, so embedded colons in the prompt survive intact.
// Returns ErrMalformedChallenge when fewer than five fields are present or
// the leading field is not the CRV1 marker.
func Parse(raw string) (*Challenge, error) {
	fields := strings.SplitN(raw, ":", 5)
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: expected 5 colon-separated fields, got %d", ErrMalformedChallenge, len(fields))
	}
	if fields[0] != "CRV1" {
		return nil, fmt.Errorf("%w: unexpected marker %q", ErrMalformedChallenge, fields[0])
	}

	ch := &Challenge{
		StateID: fields[2],
		Prompt:  fields[4],
	}

	// fields[3] is the server's copy of the username; the client has no use
	// for it.
	for _, flag := range strings.Split(fields[1], ",") {
		if flag != "" {
			ch.Flags = append(ch.Flags, flag)
		}
	}

	return ch, nil
}

// HasFlag reports whether the challenge carries the given capability marker.
func (c *Challenge) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// ResponseRequired reports whether the server expects a response value (R).
func (c *Challenge) ResponseRequired() bool {
	return c.HasFlag(FlagResponseRequired)
}

// EchoResponse reports whether the user's input may be echoed (E).
func (c *Challenge) EchoResponse() bool {
	return c.HasFlag(FlagEchoResponse)
}
