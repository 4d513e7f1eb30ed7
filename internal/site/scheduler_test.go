package site

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReloadScheduler(t *testing.T) {
	dir := t.TempDir()
	src := writeDescriptors(t, dir, descriptors)
	cfg := testConfig(t, src)
	initial, err := Init(cfg)
	require.NoError(t, err)
	h := NewHolder(initial, StaticConfig(cfg))

	s, err := NewReloadScheduler(h)
	require.NoError(t, err)
	id, err := s.Schedule(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s.Start()
	require.Eventually(t, func() bool {
		return h.Current() != initial
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestReloadScheduler_InvalidInterval(t *testing.T) {
	src := writeDescriptors(t, t.TempDir(), descriptors)
	initial, err := Init(testConfig(t, src))
	require.NoError(t, err)

	s, err := NewReloadScheduler(NewHolder(initial, nil))
	require.NoError(t, err)
	_, err = s.Schedule(context.Background(), 0)
	require.Error(t, err)
	require.NoError(t, s.Stop())
}
