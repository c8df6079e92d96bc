package download

import (
	"errors"
	"strings"

	"github.com/claytonburns/asprofile/asrest"
	"github.com/claytonburns/asprofile/crv1"
)

// Result discriminates the outcome of one fetch attempt.
type Result int

const (
	// ResultSuccess indicates the server released a profile.
	ResultSuccess Result = iota

	// ResultChallenge indicates the server demands a CRV1 challenge round
	// before it will release the profile.
	ResultChallenge

	// ResultFatal indicates the attempt failed terminally.
	ResultFatal
)

// String returns the result name for logging.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultChallenge:
		return "challenge"
	case ResultFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one fetch attempt. Exactly one of
// Profile, Challenge and Err is populated, matching Result.
type Outcome struct {
	Result    Result
	Profile   []byte
	Challenge *crv1.Challenge
	Err       error
}

// Classify categorizes the raw result of one fetch attempt. It is pure:
// classifying the same inputs twice yields the same outcome.
//
// A nil error is a success carrying body. An error that unwraps to the
// server's error document is a challenge when the document announces one
// (Type "Authorization Required", Message prefixed "CRV1:") and fatal
// otherwise, with the document's Message as the failure description. A
// challenge that does not parse is fatal with crv1.ErrMalformedChallenge,
// never silently defaulted. Any other error is fatal as-is, without
// protocol interpretation.
func Classify(body []byte, err error) Outcome {
	if err == nil {
		return Outcome{Result: ResultSuccess, Profile: body}
	}

	var doc *asrest.ErrorDocument
	if !errors.As(err, &doc) {
		return Outcome{Result: ResultFatal, Err: err}
	}

	if doc.Type == asrest.TypeAuthorizationRequired && strings.HasPrefix(doc.Message, crv1.Prefix) {
		ch, parseErr := crv1.Parse(doc.Message)
		if parseErr != nil {
			return Outcome{Result: ResultFatal, Err: parseErr}
		}
		return Outcome{Result: ResultChallenge, Challenge: ch}
	}

	return Outcome{Result: ResultFatal, Err: errors.New(doc.Message)}
}
