package gateway

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/bryan-cox/taskboard/internal/config"
	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Scopes required to read a Realtime Database with a service account.
var firebaseScopes = []string{
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

// FirebaseSource reads one node of a Firebase Realtime Database through the
// REST API.
type FirebaseSource struct {
	databaseURL string
	node        string
	client      *http.Client
}

// NewFirebaseSource authenticates with the base64-encoded service account in
// cfg. It does not contact the database.
func NewFirebaseSource(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseSource, error) {
	encoded := strings.TrimSpace(cfg.ServiceAccountBase64)
	if encoded == "" {
		return nil, errors.Wrapf(errors.ErrSourceNotConfigured, "%s is not set", config.ServiceAccountEnv)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCredentialsInvalid, "service account is not base64: %v", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(raw, firebaseScopes...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCredentialsInvalid, "service account JSON: %v", err)
	}

	client := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	client.Timeout = cfg.Timeout
	return NewFirebaseSourceWithClient(cfg.DatabaseURL, cfg.Node, client), nil
}

// NewFirebaseSourceWithClient uses client as is; it must already attach
// credentials if the database requires them.
func NewFirebaseSourceWithClient(databaseURL, node string, client *http.Client) *FirebaseSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FirebaseSource{databaseURL: databaseURL, node: node, client: client}
}

// Name implements Source.
func (s *FirebaseSource) Name() string {
	return "firebase"
}

// Endpoint returns the REST URL of the configured node.
func (s *FirebaseSource) Endpoint() (string, error) {
	base, err := url.Parse(strings.TrimRight(s.databaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", errors.Wrapf(errors.ErrSourceNotConfigured, "invalid database URL %q", s.databaseURL)
	}
	node := strings.Trim(s.node, "/")
	if node == "" {
		return base.String() + ".json", nil
	}
	return base.JoinPath(node).String() + ".json", nil
}

// Fetch implements Source.
func (s *FirebaseSource) Fetch(ctx context.Context) (model.Dataset, error) {
	endpoint, err := s.Endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFetchFailed, "GET %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrFetchFailed, "firebase returned status %d", resp.StatusCode)
	}

	dataset, skipped, err := DecodeJSON(resp.Body)
	if err != nil {
		return nil, err
	}
	logSkipped(ctx, s.Name(), skipped)
	return dataset, nil
}
