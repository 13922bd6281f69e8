package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/application/dto"
)

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestReloader_SupersededLoadIsDropped(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) (*dto.BoardDTO, error) {
		if calls.Add(1) == 1 {
			<-release
			return &dto.BoardDTO{Root: "stale"}, nil
		}
		return &dto.BoardDTO{Root: "fresh"}, nil
	}
	logger, _ := logtest.NewNullLogger()
	reloader := NewReloader(load, logger)
	snapshots, unsubscribe := reloader.Subscribe()
	defer unsubscribe()

	first := reloader.Reload(context.Background())
	second := reloader.Reload(context.Background())
	assert.Greater(t, second, first)

	snapshot := receive(t, snapshots)
	assert.Equal(t, second, snapshot.Generation)
	assert.Equal(t, "fresh", snapshot.Board.Root)

	close(release)
	reloader.Wait()
	select {
	case snapshot := <-snapshots:
		t.Fatalf("unexpected snapshot from generation %d", snapshot.Generation)
	default:
	}
}

func TestReloader_PublishesErrors(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	reloader := NewReloader(func(context.Context) (*dto.BoardDTO, error) {
		return nil, errors.New("boom")
	}, logger)
	snapshots, unsubscribe := reloader.Subscribe()
	defer unsubscribe()

	reloader.Reload(context.Background())
	snapshot := receive(t, snapshots)
	assert.EqualError(t, snapshot.Err, "boom")
	reloader.Wait()
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Board reload failed", hook.LastEntry().Message)
}

func TestReloader_RunReloadsOnChanges(t *testing.T) {
	var calls atomic.Int32
	reloader := NewReloader(func(context.Context) (*dto.BoardDTO, error) {
		calls.Add(1)
		return &dto.BoardDTO{}, nil
	}, nil)
	snapshots, unsubscribe := reloader.Subscribe()
	defer unsubscribe()

	changes := make(chan struct{})
	done := make(chan struct{})
	go func() {
		reloader.Run(context.Background(), changes)
		close(done)
	}()

	assert.Equal(t, uint64(1), receive(t, snapshots).Generation)
	changes <- struct{}{}
	assert.Equal(t, uint64(2), receive(t, snapshots).Generation)

	close(changes)
	<-done
	reloader.Wait()
	assert.Equal(t, int32(2), calls.Load())
}
