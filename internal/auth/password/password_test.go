package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
	assert.NotContains(t, encoded, "correct horse battery")

	assert.True(t, Verify("correct horse battery", encoded))
	assert.False(t, Verify("wrong", encoded))
}

func TestHashUsesRandomSalt(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	assert.False(t, Verify("pw", "plain-text"))
	assert.False(t, Verify("pw", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA"))
}

func TestNeedsRehash(t *testing.T) {
	current, err := Hash("pw-current")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(current))

	weaker, err := hashWith("pw-old", Params{Memory: 16 * 1024, Time: 1, Threads: 2, KeyLen: 32, SaltLen: 16})
	require.NoError(t, err)
	assert.True(t, Verify("pw-old", weaker))
	assert.True(t, NeedsRehash(weaker))

	assert.True(t, NeedsRehash("plain-text"))
}

func TestVerifyMissingDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { VerifyMissing("anything") })
}
