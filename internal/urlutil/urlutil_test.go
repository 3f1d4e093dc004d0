package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSchemeAliases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"tcp://localhost:8529", "http://localhost:8529"},
		{"ssl://localhost:8529", "https://localhost:8529"},
		{"tls://localhost:8529", "https://localhost:8529"},
		{"http://localhost:8529", "http://localhost:8529"},
		{"https://localhost:8529", "https://localhost:8529"},
	}
	for _, c := range cases {
		got, err := Normalize(c.raw)
		require.NoError(t, err)
		require.Equal(t, c.want, got.URL)
		require.Empty(t, got.UnixSocketPath)
	}
}

func TestNormalizeUnixSocketForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw        string
		wantScheme string
		wantPath   string
	}{
		{"unix:///var/run/arangodb.sock", "http://unix", "/var/run/arangodb.sock"},
		{"http+unix:///var/run/arangodb.sock", "http://unix", "/var/run/arangodb.sock"},
		{"https+unix:///var/run/arangodb.sock", "https://unix", "/var/run/arangodb.sock"},
		{"http://unix:/var/run/arangodb.sock", "http://unix", "/var/run/arangodb.sock"},
		{"https://unix:/var/run/arangodb.sock", "https://unix", "/var/run/arangodb.sock"},
	}
	for _, c := range cases {
		got, err := Normalize(c.raw)
		require.NoError(t, err)
		require.Equal(t, c.wantScheme, got.URL)
		require.Equal(t, c.wantPath, got.UnixSocketPath)
	}
}

func TestNormalizeEmptyURLIsAnError(t *testing.T) {
	t.Parallel()

	_, err := Normalize("   ")
	require.Error(t, err)
}

func TestNormalizeInvalidURLIsAnError(t *testing.T) {
	t.Parallel()

	_, err := Normalize("http://%zz")
	require.Error(t, err)
}
