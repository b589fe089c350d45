//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/siteask/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_StopsBrowserProcess(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, alive(pid))

	require.NoError(t, fetcher.Close())

	assert.Eventually(t, func() bool { return !alive(pid) }, 2*time.Second, 50*time.Millisecond)
}
