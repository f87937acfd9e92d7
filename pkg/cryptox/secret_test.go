package cryptox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/pkg/cryptox"
)

func TestHashAndVerifySecret(t *testing.T) {
	cryptox.SetPepper("unit-test-pepper")

	hash, err := cryptox.HashSecret("482913")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

	require.NoError(t, cryptox.VerifySecret("482913", hash))
	require.ErrorIs(t, cryptox.VerifySecret("482914", hash), cryptox.ErrMismatch)

	again, err := cryptox.HashSecret("482913")
	require.NoError(t, err)
	require.NotEqual(t, hash, again, "salt must differ per hash")

	t.Run("pepper change invalidates hashes", func(t *testing.T) {
		cryptox.SetPepper("rotated")
		defer cryptox.SetPepper("unit-test-pepper")
		require.ErrorIs(t, cryptox.VerifySecret("482913", hash), cryptox.ErrMismatch)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, enc := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=19$bad$aa$bb"} {
			require.ErrorIs(t, cryptox.VerifySecret("x", enc), cryptox.ErrMalformedHash, enc)
		}
	})
}

func TestLoadPepper(t *testing.T) {
	defer cryptox.SetPepper(cryptox.Pepper())

	file := filepath.Join(t.TempDir(), "keys", "pepper")

	require.NoError(t, cryptox.LoadPepper(file))
	first := cryptox.Pepper()
	require.NotEmpty(t, first)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, first, string(data))

	cryptox.SetPepper("something-else")
	require.NoError(t, cryptox.LoadPepper(file))
	require.Equal(t, first, cryptox.Pepper())

	require.Error(t, cryptox.LoadPepper(""))
}
