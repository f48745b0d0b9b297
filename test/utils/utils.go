package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func WriteFile(t *testing.T, path, content string) {
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
