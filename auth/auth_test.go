package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasic(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Basic cm9vdDpvcGVu", Basic("root", "open"))
}

func TestBearer(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Bearer abc.def.ghi", Bearer("abc.def.ghi"))
}
