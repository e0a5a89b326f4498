package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1","type":"payment.succeeded"}`)

	require.NoError(t, VerifySignature(secret, body, Sign(secret, body)))

	assert.ErrorIs(t, VerifySignature(secret, body, "deadbeef"), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature(secret, body, ""), ErrBadSignature)
	assert.ErrorIs(t, VerifySignature("other_secret", body, Sign(secret, body)), ErrBadSignature)

	// The signature binds the exact bytes; any mutation invalidates it.
	mutated := append([]byte{}, body...)
	mutated[0] = ' '
	assert.ErrorIs(t, VerifySignature(secret, mutated, Sign(secret, body)), ErrBadSignature)
}
