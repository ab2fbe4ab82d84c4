package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates a bearer credential and yields the stable
// user identifier encoded in it.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

const securetokenCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// FirebaseVerifier checks Firebase ID tokens against Google's published
// signing certificates. Certificates are cached for the lifetime the
// endpoint advertises and refreshed when an unknown key id shows up.
type FirebaseVerifier struct {
	projectID string
	client    *http.Client
	certsURL  string

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	refresh time.Time
}

// FirebaseVerifierOption configures optional dependencies.
type FirebaseVerifierOption func(*FirebaseVerifier)

// WithHTTPClient overrides the HTTP client used to fetch certificates.
func WithHTTPClient(client *http.Client) FirebaseVerifierOption {
	return func(v *FirebaseVerifier) {
		if client != nil {
			v.client = client
		}
	}
}

// WithCertsURL overrides the certificate endpoint.
func WithCertsURL(certsURL string) FirebaseVerifierOption {
	return func(v *FirebaseVerifier) {
		if certsURL != "" {
			v.certsURL = certsURL
		}
	}
}

// NewFirebaseVerifier constructs a verifier for the given project.
func NewFirebaseVerifier(projectID string, opts ...FirebaseVerifierOption) *FirebaseVerifier {
	v := &FirebaseVerifier{
		projectID: projectID,
		client:    &http.Client{Timeout: 10 * time.Second},
		certsURL:  securetokenCertsURL,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses the ID token, checks its signature against Google's
// certificates, and validates issuer, audience and expiry for the
// configured project. It returns the token subject: the Firebase uid.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", errors.New("id token must not be empty")
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}

	return claims.Subject, nil
}

func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Now().Before(v.refresh) {
		return key, nil
	}

	if err := v.fetchKeys(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for key id %q", kid)
	}
	return key, nil
}

// fetchKeys downloads the kid -> x509 certificate map. Caller must hold mu.
func (v *FirebaseVerifier) fetchKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch signing certs: unexpected status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decode signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCertPublicKey(certPEM)
		if err != nil {
			return fmt.Errorf("parse cert for key id %q: %w", kid, err)
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return errors.New("signing cert response contained no keys")
	}

	v.keys = keys
	v.refresh = time.Now().Add(certsMaxAge(resp.Header.Get("Cache-Control")))
	return nil
}

func parseCertPublicKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not carry an RSA key")
	}
	return key, nil
}

const defaultCertsTTL = time.Hour

func certsMaxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCertsTTL
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)
