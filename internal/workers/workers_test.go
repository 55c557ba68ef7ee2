// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_Success(t *testing.T) {
	task := Go(context.Background(), func(ctx context.Context) (string, error) {
		return "Random-Data", nil
	})

	res := task.Await(context.Background())

	require.True(t, res.IsSuccess())
	assert.Equal(t, "Random-Data", res.Value())

	select {
	case <-task.Done():
	default:
		t.Fatal("expected Done to be closed after Await returned the result")
	}
}

func TestGo_Failure(t *testing.T) {
	boom := errors.New("boom")
	task := Go(context.Background(), func(ctx context.Context) ([]byte, error) {
		return nil, boom
	})

	_, err := task.Await(context.Background()).Get()
	assert.ErrorIs(t, err, boom)
}

func TestTask_Cancel(t *testing.T) {
	started := make(chan struct{})
	task := Go(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	<-started
	task.Cancel()

	res := task.Await(context.Background())
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestTask_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	task := Go(parent, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	cancel()

	assert.ErrorIs(t, task.Await(context.Background()).Err(), context.Canceled)
}

func TestTask_AwaitDeadlineDoesNotCancelTask(t *testing.T) {
	release := make(chan struct{})
	task := Go(context.Background(), func(ctx context.Context) (int, error) {
		select {
		case <-release:
			return 7, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	res := task.Await(waitCtx)
	assert.ErrorIs(t, res.Err(), context.DeadlineExceeded)

	close(release)
	res = task.Await(context.Background())
	require.True(t, res.IsSuccess())
	assert.Equal(t, 7, res.Value())
}

func TestGo_Panic(t *testing.T) {
	task := Go(context.Background(), func(ctx context.Context) (int, error) {
		panic("keystore exploded")
	})

	res := task.Await(context.Background())
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), ErrTaskPanicked)
	assert.Contains(t, res.Err().Error(), "keystore exploded")
}

func TestAwaitAll_Order(t *testing.T) {
	tasks := make([]*Task[int], 0, 3)
	for i := range 3 {
		tasks = append(tasks, Go(context.Background(), func(ctx context.Context) (int, error) {
			time.Sleep(time.Duration(3-i) * time.Millisecond)
			return i, nil
		}))
	}

	results := AwaitAll(context.Background(), tasks...)

	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, i, res.Value())
	}
}

func TestAwaitAll_Empty(t *testing.T) {
	assert.Empty(t, AwaitAll[int](context.Background()))
}
