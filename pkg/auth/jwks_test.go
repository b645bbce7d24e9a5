package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

func serveJWKS(t *testing.T, keys ...JSONWebKey) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: keys})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestProvider_VerifiesRS256(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv, _ := serveJWKS(t, JSONWebKey{
		Kid: "rsa-1",
		Kty: "RSA",
		Alg: "RS256",
		N:   b64(priv.N.Bytes()),
		E:   b64(big.NewInt(int64(priv.E)).Bytes()),
	})

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "ext-1", "exp": time.Now().Add(time.Hour).Unix()})
	token.Header["kid"] = "rsa-1"
	signed, err := token.SignedString(priv)
	require.NoError(t, err)

	p := NewProvider(srv.URL)
	parsed, err := jwt.Parse(signed, p.KeyFunc)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestProvider_VerifiesES256(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	srv, _ := serveJWKS(t, JSONWebKey{
		Kid: "ec-1",
		Kty: "EC",
		Alg: "ES256",
		Crv: "P-256",
		X:   b64(priv.X.FillBytes(make([]byte, 32))),
		Y:   b64(priv.Y.FillBytes(make([]byte, 32))),
	})

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{"sub": "ext-1"})
	token.Header["kid"] = "ec-1"
	signed, err := token.SignedString(priv)
	require.NoError(t, err)

	p := NewProvider(srv.URL)
	parsed, err := jwt.Parse(signed, p.KeyFunc)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestProvider_UnknownKidThrottlesRefresh(t *testing.T) {
	srv, hits := serveJWKS(t, JSONWebKey{Kid: "known", Kty: "RSA", N: b64([]byte{1}), E: b64([]byte{1, 0, 1})})

	p := NewProvider(srv.URL)
	_, err := p.GetKey(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = p.GetKey(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Equal(t, int32(1), hits.Load())
}

func TestProvider_RejectsHMAC(t *testing.T) {
	p := NewProvider("http://unused")
	_, err := p.KeyFunc(&jwt.Token{Method: jwt.SigningMethodHS256, Header: map[string]interface{}{"alg": "HS256"}})
	assert.Error(t, err)
}
