package batch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dashboard-converter/internal/processor"
)

type result struct {
	summary *Summary
	err     error
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.json": `{"uid": "a"}`})

	d, err := New(Config{Input: root, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	runs := make(chan result, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- d.Watch(ctx, Pipeline(processor.Pipeline{}), 20*time.Millisecond, func(s *Summary, err error) {
			runs <- result{s, err}
		})
	}()

	next := func() result {
		t.Helper()

		select {
		case r := <-runs:
			require.NoError(t, r.err)
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no batch run")
			return result{}
		}
	}

	assert.Equal(t, 1, next().summary.Documents)

	writeTree(t, root, map[string]string{"b.json": `{"uid": "b"}`})
	assert.Equal(t, 2, next().summary.Documents)
	assert.FileExists(t, filepath.Join(d.Output(), "b.json"))

	writeTree(t, root, map[string]string{"sub/c.json": `{"uid": "c"}`})
	for r := next(); r.summary.Documents < 3; r = next() {
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
