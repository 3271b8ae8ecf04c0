package jwtx

import (
	"testing"
	"time"

	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, kid string) Signer {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519PEM()
	require.NoError(t, err)

	signer, err := NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-001")

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	verifier := NewCommonEdDSA(keys, "overdraft-api")

	claims := NewAccessClaims("bank_app_001", "Main Banking System", time.Hour, "overdraft-api", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "bank_app_001", got.Subject)
	require.Equal(t, "Main Banking System", got.AppName)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-001")
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewCommonEdDSA(keys, "overdraft-api")

	claims := NewAccessClaims("bank_app_001", "Main Banking System", time.Hour, "overdraft-api",
		time.Now().UTC().Add(-2*time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-001")
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewCommonEdDSA(keys, "overdraft-api")

	_, err := verifier.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = verifier.Verify("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-001")
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewCommonEdDSA(keys, "overdraft-api")

	claims := NewAccessClaims("bank_app_001", "Main Banking System", time.Hour, "someone-else", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-001")
	other := newTestSigner(t, "key-002")

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(other))
	verifier := NewCommonEdDSA(keys, "overdraft-api")

	claims := NewAccessClaims("bank_app_001", "Main Banking System", time.Hour, "overdraft-api", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrMalformed)
}
