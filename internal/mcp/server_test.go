package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Server:
// - NewServer requires a service and only watches when asked
// - The watcher drops cached skeletons when a source file changes

func TestNewServer(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil, ServerOptions{}, nil)
	assert.Error(t, err)

	s, err := NewServer(newTestService(t), ServerOptions{ProjectRoot: t.TempDir()}, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.MCP(), "server should exist")
	assert.Nil(t, s.watcher, "watcher is off unless requested")
}

func TestServer_WatcherInvalidatesCache(t *testing.T) {
	t.Parallel()

	root := newProject(t)
	service := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewServer(service, ServerOptions{
		ProjectRoot: root,
		Include:     []string{"**/*.java"},
		Watch:       true,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, s.watcher.Start(ctx, s.invalidate))
	defer s.Close()

	path := filepath.Join(root, "src", "Greeter.java")
	_, err = service.Skeleton(ctx, path, "", nil)
	require.NoError(t, err)
	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Entries)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("public class Greeter {}\n"), 0644))

	assert.Eventually(t, func() bool {
		stats, err := service.Stats(ctx)
		return err == nil && stats.Entries == 0
	}, 5*time.Second, 50*time.Millisecond)

	doc, err := service.Skeleton(ctx, path, "", nil)
	require.NoError(t, err)
	assert.NotContains(t, doc.Text, "greet")
}
