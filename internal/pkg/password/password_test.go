package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashWithParams("admin123", testParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := Verify("admin123", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("admin124", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltsDiffer(t *testing.T) {
	a, err := HashWithParams("same", testParams)
	require.NoError(t, err)
	b, err := HashWithParams("same", testParams)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_DefaultParams(t *testing.T) {
	encoded, err := Hash("admin123")
	require.NoError(t, err)
	assert.Contains(t, encoded, "m=65536,t=1,p=4")
}

func TestVerify_InvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"plain text", "admin123", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5", ErrInvalidHash},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5", ErrInvalidHash},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5", ErrInvalidHash},
		{"other version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := Verify("admin123", tt.encoded)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, ok)
		})
	}
}
