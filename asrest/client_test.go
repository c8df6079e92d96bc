package asrest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claytonburns/asprofile/asrest"
	"github.com/claytonburns/asprofile/asrest/asresttest"
	"github.com/claytonburns/asprofile/interfaces"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchProfile_Success(t *testing.T) {
	srv := asresttest.New(testLogger(), asresttest.ProfileStep("<profile-xml>"))
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	body, err := client.FetchProfile(context.Background(), "alice", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, []byte("<profile-xml>"), body)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/rest/GetUserlogin", requests[0].Endpoint)
	assert.Equal(t, "tls-cryptv2=1", requests[0].RawQuery)
	assert.Equal(t, "alice", requests[0].Username)
	assert.Equal(t, "secret", requests[0].Credential)
}

func TestFetchProfile_AutologinEndpoint(t *testing.T) {
	srv := asresttest.New(testLogger(), asresttest.ProfileStep("<profile-xml>"))
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	_, err := client.FetchProfile(context.Background(), "alice", "secret", true)
	require.NoError(t, err)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/rest/GetAutologin", requests[0].Endpoint)
	assert.Empty(t, requests[0].RawQuery)
}

// A CRV1 response submitted as the credential must reach the server
// verbatim, embedded colons included.
func TestFetchProfile_CredentialVerbatim(t *testing.T) {
	srv := asresttest.New(testLogger(), asresttest.ProfileStep("<profile-xml>"))
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	credential := interfaces.Credential("CRV1::abc123::999888")
	_, err := client.FetchProfile(context.Background(), "alice", credential, false)
	require.NoError(t, err)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "CRV1::abc123::999888", requests[0].Credential)
}

func TestFetchProfile_ErrorDocument(t *testing.T) {
	srv := asresttest.New(testLogger(),
		asresttest.FatalStep(asrest.TypeAuthorizationRequired, "Access denied"))
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	body, err := client.FetchProfile(context.Background(), "alice", "wrong", false)
	assert.Nil(t, body)
	require.Error(t, err)

	var doc *asrest.ErrorDocument
	require.ErrorAs(t, err, &doc)
	assert.Equal(t, asrest.TypeAuthorizationRequired, doc.Type)
	assert.Equal(t, "Access denied", doc.Message)
	assert.Equal(t, http.StatusUnauthorized, doc.Status)
}

func TestFetchProfile_ChallengeDocument(t *testing.T) {
	srv := asresttest.New(testLogger(),
		asresttest.ChallengeStep("R,E", "abc123", "Enter your token: "))
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	_, err := client.FetchProfile(context.Background(), "alice", "secret", false)
	require.Error(t, err)

	var doc *asrest.ErrorDocument
	require.ErrorAs(t, err, &doc)
	assert.Equal(t, asrest.TypeAuthorizationRequired, doc.Type)
	assert.Equal(t, "CRV1:R,E:abc123:dXNlcg==:Enter your token: ", doc.Message)
}

// Responses that do not decode as an error document come back as plain
// errors, never as protocol traffic.
func TestFetchProfile_NonXMLFailure(t *testing.T) {
	srv := asresttest.New(testLogger(),
		asresttest.Step{Status: http.StatusBadGateway, Body: "upstream down"})
	defer srv.Close()

	client := &asrest.Client{ServerURL: srv.URL(), HTTPClient: srv.Client()}

	body, err := client.FetchProfile(context.Background(), "alice", "secret", false)
	assert.Nil(t, body)
	require.Error(t, err)

	var doc *asrest.ErrorDocument
	assert.False(t, errors.As(err, &doc))
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestFetchProfile_RejectsPlainHTTP(t *testing.T) {
	client := &asrest.Client{ServerURL: "http://as.example.com"}

	body, err := client.FetchProfile(context.Background(), "alice", "secret", false)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, asrest.ErrNotHTTPS)
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare host", "as.example.com", "https://as.example.com"},
		{"bare host with port", "as.example.com:943", "https://as.example.com:943"},
		{"explicit https", "https://as.example.com", "https://as.example.com"},
		{"trailing slash stripped", "https://as.example.com/", "https://as.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asrest.NormalizeServerURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeServerURL_Invalid(t *testing.T) {
	_, err := asrest.NormalizeServerURL("http://as.example.com")
	assert.ErrorIs(t, err, asrest.ErrNotHTTPS)

	_, err = asrest.NormalizeServerURL("ftp://as.example.com")
	assert.ErrorIs(t, err, asrest.ErrNotHTTPS)

	_, err = asrest.NormalizeServerURL("https://")
	assert.Error(t, err)
}
