package crv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		flags   []string
		stateID string
		prompt  string
	}{
		{
			name:    "response required with echo",
			raw:     "CRV1:R,E:abc123:ignored:Enter your token: ",
			flags:   []string{"R", "E"},
			stateID: "abc123",
			prompt:  "Enter your token: ",
		},
		{
			name:    "prompt keeps embedded colons",
			raw:     "CRV1:R:xyz:ig:Time is 10:30, enter code:",
			flags:   []string{"R"},
			stateID: "xyz",
			prompt:  "Time is 10:30, enter code:",
		},
		{
			name:    "informational challenge without flags",
			raw:     "CRV1::state-1:dXNlcg==:Account locked until tomorrow",
			flags:   nil,
			stateID: "state-1",
			prompt:  "Account locked until tomorrow",
		},
		{
			name:    "empty flag markers are dropped",
			raw:     "CRV1:R,,E:s:u:p",
			flags:   []string{"R", "E"},
			stateID: "s",
			prompt:  "p",
		},
		{
			name:    "empty prompt",
			raw:     "CRV1:R:s:u:",
			flags:   []string{"R"},
			stateID: "s",
			prompt:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.flags, ch.Flags)
			assert.Equal(t, tt.stateID, ch.StateID)
			assert.Equal(t, tt.prompt, ch.Prompt)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"marker only", "CRV1"},
		{"two fields", "CRV1:R"},
		{"three fields", "CRV1:R:state"},
		{"four fields", "CRV1:R:state:user"},
		{"wrong marker", "CRV2:R:state:user:prompt"},
		{"missing marker", ":R:state:user:prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := Parse(tt.raw)
			assert.Nil(t, ch)
			assert.ErrorIs(t, err, ErrMalformedChallenge)
		})
	}
}

func TestChallengeFlags(t *testing.T) {
	ch, err := Parse("CRV1:R,E:abc:u:prompt")
	require.NoError(t, err)
	assert.True(t, ch.HasFlag(FlagResponseRequired))
	assert.True(t, ch.HasFlag(FlagEchoResponse))
	assert.True(t, ch.ResponseRequired())
	assert.True(t, ch.EchoResponse())
	assert.False(t, ch.HasFlag("X"))

	ch, err = Parse("CRV1:R:abc:u:prompt")
	require.NoError(t, err)
	assert.True(t, ch.ResponseRequired())
	assert.False(t, ch.EchoResponse())

	ch, err = Parse("CRV1::abc:u:prompt")
	require.NoError(t, err)
	assert.False(t, ch.ResponseRequired())
	assert.False(t, ch.EchoResponse())
}
