package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	require.Equal(t, "11144477735", Normalize("111.444.777-35"))
	require.Equal(t, "12345678000195", Normalize("12.345.678/0001-95"))
	require.Equal(t, "123", Normalize("a1b2c3"))
	require.Equal(t, "", Normalize(""))
	require.Equal(t, "", Normalize("---..."))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindShort, Classify("11144477735"))
	require.Equal(t, KindLong, Classify("12345678000195"))
	require.Equal(t, KindInvalid, Classify(""))
	require.Equal(t, KindInvalid, Classify("123456789"))
	require.Equal(t, KindInvalid, Classify("123456789012345"))
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	t.Run("short form", func(t *testing.T) {
		require.True(t, IsValid("111.444.777-35"))
		require.True(t, IsValid("11144477735"))
		require.False(t, IsValid("123.456.789-00"))
		require.False(t, IsValid("00000000000"))
		require.False(t, IsValid("11111111111"))
		// Corrupting a check digit must flip the result.
		require.False(t, IsValid("11144477734"))
	})

	t.Run("long form", func(t *testing.T) {
		require.True(t, IsValid("12345678000195"))
		require.True(t, IsValid("12.345.678/0001-95"))
		require.False(t, IsValid("12345678000194"))
		require.False(t, IsValid("00000000000000"))
		require.False(t, IsValid("99999999999999"))
	})

	t.Run("wrong lengths", func(t *testing.T) {
		require.False(t, IsValid(""))
		require.False(t, IsValid("123"))
		require.False(t, IsValid("123456789012"))
	})

	t.Run("formatted and unformatted agree", func(t *testing.T) {
		pairs := [][2]string{
			{"111.444.777-35", "11144477735"},
			{"123.456.789-00", "12345678900"},
			{"12.345.678/0001-95", "12345678000195"},
		}
		for _, p := range pairs {
			require.Equal(t, IsValid(p[0]), IsValid(p[1]), "input %q vs %q", p[0], p[1])
		}
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "111.444.777-35", Format("11144477735"))
	require.Equal(t, "12.345.678/0001-95", Format("12345678000195"))
	// Unexpected lengths pass through untouched.
	require.Equal(t, "123", Format("123"))
	require.Equal(t, "", Format(""))
}

func TestFormatNormalizeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"11144477735", "12345678000195", "98765432100"} {
		require.Equal(t, Normalize(raw), Normalize(Format(Normalize(raw))))
	}
}
