// Package auth verifies identity provider tokens against the provider's JWKS endpoint.
package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minRefreshInterval throttles JWKS fetches triggered by unknown kids.
const minRefreshInterval = time.Minute

var ErrKeyNotFound = errors.New("signing key not found")

type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

type JSONWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	// RSA
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`
	// EC
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

type Provider struct {
	mu        sync.RWMutex
	keys      map[string]*JSONWebKey
	url       string
	client    *http.Client
	refreshed time.Time
}

// JWKSURL returns the well-known key set location of a Supabase project.
func JWKSURL(projectURL string) string {
	return projectURL + "/auth/v1/.well-known/jwks.json"
}

func NewProvider(jwksURL string) *Provider {
	return &Provider{
		url:    jwksURL,
		keys:   make(map[string]*JSONWebKey),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// KeyFunc resolves the verification key for RS256 and ES256 tokens.
func (p *Provider) KeyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA:
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("kid header not found")
	}

	key, err := p.GetKey(context.Background(), kid)
	if err != nil {
		return nil, err
	}
	return key.PublicKey()
}

func (p *Provider) GetKey(ctx context.Context, kid string) (*JSONWebKey, error) {
	p.mu.RLock()
	key, exists := p.keys[kid]
	p.mu.RUnlock()

	if exists {
		return key, nil
	}

	if err := p.fetchKeys(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	key, exists = p.keys[kid]
	p.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}
	return key, nil
}

func (p *Provider) fetchKeys(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.refreshed) < minRefreshInterval && len(p.keys) > 0 {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*JSONWebKey, len(jwks.Keys))
	for i := range jwks.Keys {
		keys[jwks.Keys[i].Kid] = &jwks.Keys[i]
	}
	p.keys = keys
	p.refreshed = time.Now()
	return nil
}

// PublicKey decodes the key material into an *rsa.PublicKey or *ecdsa.PublicKey.
func (k *JSONWebKey) PublicKey() (interface{}, error) {
	switch k.Kty {
	case "RSA":
		return k.rsaPublicKey()
	case "EC":
		return k.ecdsaPublicKey()
	default:
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
}

func (k *JSONWebKey) rsaPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}

func (k *JSONWebKey) ecdsaPublicKey() (*ecdsa.PublicKey, error) {
	if k.Crv != "P-256" {
		return nil, fmt.Errorf("unsupported curve %q", k.Crv)
	}
	xBytes, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, err
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, err
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}
