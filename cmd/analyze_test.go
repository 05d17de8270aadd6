package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = old })

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

// Notices are side commentary, so they must stay off stdout where -o json
// and -o yaml output goes.
func TestPrintNoticeWritesToStderr(t *testing.T) {
	got := captureStderr(t, func() { printNotice("analysis cancelled") })
	require.Contains(t, got, "analysis cancelled")
}
