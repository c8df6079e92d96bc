package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claytonburns/asprofile/crv1"
	"github.com/claytonburns/asprofile/interfaces"
)

// State identifies a position in the download state machine.
type State int

const (
	// StateAttempting: a fetch attempt is due with the current credential.
	StateAttempting State = iota

	// StateAwaitingChallengeResponse: the server issued a challenge that
	// must be resolved before the next attempt.
	StateAwaitingChallengeResponse

	// StateSucceeded: terminal, the profile has been obtained.
	StateSucceeded

	// StateFatalFailure: terminal, the download failed.
	StateFatalFailure
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateAwaitingChallengeResponse:
		return "awaiting-challenge-response"
	case StateSucceeded:
		return "succeeded"
	case StateFatalFailure:
		return "fatal-failure"
	default:
		return "unknown"
	}
}

// ErrNoProfile indicates a nominally successful fetch that carried no
// profile text. Kept distinct from protocol failures.
var ErrNoProfile = errors.New("no profile retrieved")

// ErrControllerReused indicates a Run call on a controller that has already
// completed a download.
var ErrControllerReused = errors.New("download controller is single use")

// Controller owns the fetch/retry loop for one profile download. It holds
// the current credential exclusively for the loop's duration and performs
// one attempt at a time; challenge prompting blocks the loop until the user
// responds. Create a fresh controller for every download.
type Controller struct {
	fetcher interfaces.ProfileFetcher
	ui      interfaces.Interactor
	log     *slog.Logger

	state     State
	challenge *crv1.Challenge
	attempts  int
}

// New returns a controller for a single profile download.
func New(fetcher interfaces.ProfileFetcher, ui interfaces.Interactor, log *slog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		ui:      ui,
		log:     log,
		state:   StateAttempting,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Attempts returns the number of fetch attempts performed so far.
func (c *Controller) Attempts() int {
	return c.attempts
}

// Run executes the download loop until the server releases a profile or a
// fatal error occurs. The initial credential is the user-supplied password;
// each resolved challenge replaces it with a formatted CRV1 response. There
// is no bound on the number of challenge rounds.
func (c *Controller) Run(ctx context.Context, username, password string, autologin bool) ([]byte, error) {
	if c.state != StateAttempting || c.attempts > 0 {
		return nil, ErrControllerReused
	}

	credential := interfaces.Credential(password)

	for {
		switch c.state {
		case StateAttempting:
			c.attempts++
			c.log.Debug("Requesting profile",
				slog.Int("attempt", c.attempts),
				slog.Bool("autologin", autologin))

			body, err := c.fetcher.FetchProfile(ctx, username, credential, autologin)
			outcome := Classify(body, err)
			c.log.Debug("Attempt classified", slog.String("result", outcome.Result.String()))

			switch outcome.Result {
			case ResultSuccess:
				if len(outcome.Profile) == 0 {
					c.transition(StateFatalFailure)
					return nil, ErrNoProfile
				}
				c.transition(StateSucceeded)
				return outcome.Profile, nil

			case ResultChallenge:
				c.challenge = outcome.Challenge
				c.transition(StateAwaitingChallengeResponse)

			case ResultFatal:
				c.transition(StateFatalFailure)
				return nil, outcome.Err
			}

		case StateAwaitingChallengeResponse:
			responder := crv1.NewResponder(c.challenge)
			expected, err := responder.Run(c.ui)
			if err != nil {
				c.transition(StateFatalFailure)
				return nil, fmt.Errorf("challenge round failed: %w", err)
			}
			c.log.Debug("Challenge round resolved", slog.Bool("responseExpected", expected))

			credential = interfaces.Credential(responder.Response())
			c.challenge = nil
			c.transition(StateAttempting)
		}
	}
}

func (c *Controller) transition(next State) {
	c.log.Debug("State transition",
		slog.String("from", c.state.String()),
		slog.String("to", next.String()))
	c.state = next
}
