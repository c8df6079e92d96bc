package asrest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/claytonburns/asprofile/interfaces"
)

// Profile endpoints, selected by the autologin flag.
const (
	autologinEndpoint = "/rest/GetAutologin"
	userloginEndpoint = "/rest/GetUserlogin?tls-cryptv2=1"
)

// ErrNotHTTPS indicates a server URL whose scheme is not https. Profiles
// carry key material, so the client refuses to talk over anything else.
var ErrNotHTTPS = errors.New("server URL scheme must be https")

// Client implements interfaces.ProfileFetcher against the Access Server
// REST API.
type Client struct {
	// ServerURL is the base URL of the Access Server, https only.
	ServerURL string

	// HTTPClient is the HTTP client to request with. Defaults to
	// http.DefaultClient; set to InsecureHTTPClient() to accept self-signed
	// server certificates.
	HTTPClient *http.Client
}

// FetchProfile performs one authenticated profile request. The credential is
// sent verbatim as the basic-auth password: the user's password on the first
// attempt, a formatted CRV1 response on retries.
//
// On a non-200 response whose body decodes as an error document, the decoded
// *ErrorDocument is returned as the error. Any other failure, including
// transport errors and undecodable bodies, is returned as a plain error.
func (c *Client) FetchProfile(ctx context.Context, username string, credential interfaces.Credential, autologin bool) ([]byte, error) {
	base, err := url.Parse(c.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if base.Scheme != "https" {
		return nil, fmt.Errorf("%w, got %q", ErrNotHTTPS, base.Scheme)
	}

	endpoint := strings.TrimSuffix(c.ServerURL, "/") + userloginEndpoint
	if autologin {
		endpoint = strings.TrimSuffix(c.ServerURL, "/") + autologinEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	req.SetBasicAuth(username, string(credential))

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request profile endpoint: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read profile response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if doc := decodeErrorDocument(body); doc != nil {
			doc.Status = resp.StatusCode
			return nil, doc
		}
		return nil, fmt.Errorf("profile endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// NormalizeServerURL prepares a user-supplied server address for the client.
// A bare host gets the https scheme prepended; any explicit scheme other
// than https is rejected with ErrNotHTTPS. Trailing slashes are stripped.
func NormalizeServerURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("%w, got %q", ErrNotHTTPS, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: missing host", raw)
	}

	return strings.TrimSuffix(u.String(), "/"), nil
}

// InsecureHTTPClient returns an HTTP client that skips TLS certificate
// verification, for Access Servers still running their self-signed
// certificate. The connection is encrypted but the server is not
// authenticated.
func InsecureHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}
