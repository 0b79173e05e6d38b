package booking

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret string, ts int64, body []byte) string {
	signedPayload := fmt.Sprintf("%d.%s", ts, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature_Valid(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"type":"payment_intent.succeeded"}`)
	header := signPayload(secret, time.Now().Unix(), body)

	err := VerifyWebhookSignature(secret, body, header)
	require.NoError(t, err)
}

func TestVerifyWebhookSignature_MissingHeader(t *testing.T) {
	err := VerifyWebhookSignature("whsec_test", []byte("{}"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWebhookSignatureMissing)
}

func TestVerifyWebhookSignature_WrongSecret(t *testing.T) {
	body := []byte(`{"type":"payment_intent.succeeded"}`)
	header := signPayload("whsec_other", time.Now().Unix(), body)

	err := VerifyWebhookSignature("whsec_test", body, header)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWebhookSignatureInvalid)
}

func TestVerifyWebhookSignature_TamperedBody(t *testing.T) {
	secret := "whsec_test"
	header := signPayload(secret, time.Now().Unix(), []byte(`{"type":"payment_intent.succeeded"}`))

	err := VerifyWebhookSignature(secret, []byte(`{"type":"payment_intent.payment_failed"}`), header)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWebhookSignatureInvalid)
}

func TestVerifyWebhookSignature_StaleTimestamp(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{}`)
	stale := time.Now().Add(-10 * time.Minute).Unix()
	header := signPayload(secret, stale, body)

	err := VerifyWebhookSignature(secret, body, header)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWebhookSignatureInvalid))
}

func TestVerifyWebhookSignature_MalformedHeader(t *testing.T) {
	err := VerifyWebhookSignature("whsec_test", []byte("{}"), "not-a-valid-header")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWebhookSignatureInvalid)
}
