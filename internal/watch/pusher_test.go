package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"nexus/internal/client"
	"nexus/internal/errors"
	"nexus/internal/watch"
	"nexus/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPusherTarget(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name     string
		base     string
		path     string
		filename string
		location string
	}{
		{"top level", "", "main.go", "main.go", "."},
		{"nested", "", "src/app/main.go", "main.go", "src/app"},
		{"under base", "projects/demo/", "notes.txt", "notes.txt", "projects/demo"},
		{"nested under base", "projects", "src/main.go", "main.go", "projects/src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := watch.NewPusher(testutils.NewFakeService(), root, nil, watch.WithBase(tt.base))
			require.NoError(t, err)

			filename, location, err := p.Target(filepath.Join(root, filepath.FromSlash(tt.path)))
			require.NoError(t, err)
			assert.Equal(t, tt.filename, filename)
			assert.Equal(t, tt.location, location)
		})
	}

	p, err := watch.NewPusher(testutils.NewFakeService(), root, nil)
	require.NoError(t, err)
	_, _, err = p.Target(filepath.Join(filepath.Dir(root), "elsewhere.txt"))
	assert.Equal(t, errors.Validation, errors.KindOf(err))
}

func TestPusherPush(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"main.go":         "package main",
		"src/lib/util.py": "print('hi')",
	})

	svc := testutils.NewFakeService()
	svc.SetExists("main.go", ".")

	p, err := watch.NewPusher(svc, root, nil)
	require.NoError(t, err)
	ctx := context.Background()

	res := p.Push(ctx, filepath.Join(root, "main.go"))
	require.NoError(t, res.Err)
	assert.False(t, res.Created, "existing files go through edit")

	res = p.Push(ctx, filepath.Join(root, "src", "lib", "util.py"))
	require.NoError(t, res.Err)
	assert.True(t, res.Created)

	created, edited := svc.Snapshot()
	require.Len(t, edited, 1)
	assert.Equal(t, client.WriteRequest{Filename: "main.go", Content: "package main", Location: "."}, edited[0])
	require.Len(t, created, 1)
	assert.Equal(t, client.WriteRequest{Filename: "util.py", Content: "print('hi')", Location: "src/lib"}, created[0])

	// Once created the service reports it, so the next push edits.
	res = p.Push(ctx, filepath.Join(root, "src", "lib", "util.py"))
	require.NoError(t, res.Err)
	assert.False(t, res.Created)

	status := p.Status()
	assert.Equal(t, 3, status.FilesPushed)
	assert.Equal(t, 0, status.Failures)
	assert.False(t, status.LastActivity.IsZero())
}

func TestPusherPushFailures(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"small.txt": "ok",
		"big.txt":   strings.Repeat("x", 64),
	})

	t.Run("too large", func(t *testing.T) {
		svc := testutils.NewFakeService()
		p, err := watch.NewPusher(svc, root, nil, watch.WithMaxSize(32))
		require.NoError(t, err)

		res := p.Push(context.Background(), filepath.Join(root, "big.txt"))
		assert.Equal(t, errors.Validation, errors.KindOf(res.Err))
		assert.Equal(t, 0, svc.TotalCalls(), "nothing is sent")
	})

	t.Run("binary file", func(t *testing.T) {
		png := filepath.Join(root, "pixel.png")
		require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0644))

		svc := testutils.NewFakeService()
		p, err := watch.NewPusher(svc, root, nil)
		require.NoError(t, err)

		res := p.Push(context.Background(), png)
		assert.Equal(t, errors.Validation, errors.KindOf(res.Err))
		assert.Contains(t, res.Err.Error(), "image/png")
		assert.Equal(t, 0, svc.TotalCalls())
	})

	t.Run("missing local file", func(t *testing.T) {
		svc := testutils.NewFakeService()
		p, err := watch.NewPusher(svc, root, nil)
		require.NoError(t, err)

		res := p.Push(context.Background(), filepath.Join(root, "gone.txt"))
		assert.Equal(t, errors.FileOperationFailed, errors.KindOf(res.Err))
		assert.Equal(t, 1, p.Status().Failures)
	})

	t.Run("exists check fails", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.Fail("exists", errors.NewRequestError("boom", "/api/exists", 500, errors.Transport, nil))
		p, err := watch.NewPusher(svc, root, nil)
		require.NoError(t, err)

		res := p.Push(context.Background(), filepath.Join(root, "small.txt"))
		assert.Equal(t, errors.Transport, errors.KindOf(res.Err))
		assert.Equal(t, 0, svc.Calls("create"), "no write without a successful check")
		assert.Equal(t, 0, svc.Calls("edit"))
	})

	t.Run("create fails", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.Fail("create", errors.NewRequestError("boom", "/api/create", 500, errors.Transport, nil))
		p, err := watch.NewPusher(svc, root, nil)
		require.NoError(t, err)

		var got []watch.Result
		p.SetCallback(func(r watch.Result) { got = append(got, r) })

		res := p.Push(context.Background(), filepath.Join(root, "small.txt"))
		assert.Error(t, res.Err)
		assert.True(t, res.Created)
		require.Len(t, got, 1)
		assert.Equal(t, "small.txt", got[0].Filename)
	})
}

func TestPusherWatchesAndDebounces(t *testing.T) {
	root := t.TempDir()
	svc := testutils.NewFakeService()

	var mu sync.Mutex
	var results []watch.Result
	p, err := watch.NewPusher(svc, root, []string{"*.swp"},
		watch.WithDebounce(50*time.Millisecond),
		watch.WithCallback(func(r watch.Result) {
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Start(ctx))
	defer p.Stop()
	assert.Error(t, p.Start(ctx), "second start is rejected")
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(root, "draft.md")
	for i := 1; i <= 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("#", i)), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, ".draft.md.swp"), []byte("junk"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) > 0
	}, 3*time.Second, 20*time.Millisecond)

	// Let any stray timers fire before counting.
	time.Sleep(200 * time.Millisecond)

	created, edited := svc.Snapshot()
	all := append(created, edited...)
	require.NotEmpty(t, all)
	assert.Less(t, len(all), 3, "rapid writes are coalesced")
	assert.Equal(t, "###", all[len(all)-1].Content, "the settled content is pushed")
	for _, req := range all {
		assert.Equal(t, "draft.md", req.Filename)
	}

	status := p.Status()
	assert.True(t, status.Running)
	assert.Equal(t, []string{root}, status.Directories)

	p.Stop()
	assert.False(t, p.Status().Running)
}
