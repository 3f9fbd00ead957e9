package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBench_RejectsEmptyWorkload(t *testing.T) {
	for _, args := range [][]string{
		{"--pages", "0"},
		{"--pages", "-3"},
		{"--pages", "4", "--workers", "0"},
	} {
		argv := append([]string{"novapool", "--backend", "memory", "bench"}, args...)
		err := newApp().Run(argv)
		require.Error(t, err, "%v", args)
		require.Contains(t, err.Error(), "must be positive")
	}
}

func TestBench_SmallWorkload(t *testing.T) {
	err := newApp().Run([]string{
		"novapool", "--backend", "memory", "--pool-size", "2", "--log-level", "error",
		"bench", "--pages", "4", "--workers", "2", "--ops", "20",
	})
	require.NoError(t, err)
}
