package cryptox_test

import (
	"strconv"
	"testing"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/require"
	"github.com/yukti/platform/pkg/cryptox"
)

func TestGenerateNumericCode(t *testing.T) {
	for range 200 {
		code, err := cryptox.GenerateNumericCode(otp.DigitsSix)
		require.NoError(t, err)
		require.True(t, cryptox.ValidNumericCode(code, otp.DigitsSix))

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestValidNumericCode(t *testing.T) {
	cases := map[string]bool{
		"123456":  true,
		"012345":  true,
		"12345":   false,
		"1234567": false,
		"12a456":  false,
		"":        false,
	}
	for code, want := range cases {
		require.Equal(t, want, cryptox.ValidNumericCode(code, otp.DigitsSix), code)
	}
}
