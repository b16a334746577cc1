package generator

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	req := require.New(t)
	cfg := Config{NumMessages: 20, MinWords: 2, MaxWords: 5, Seed: 7}

	first, err := New(cfg).Generate(context.Background())
	req.NoError(err)
	second, err := New(cfg).Generate(context.Background())
	req.NoError(err)

	req.Len(first, 20)
	req.Equal(first, second)
	for _, text := range first {
		words := strings.Fields(text)
		req.GreaterOrEqual(len(words), 2)
		req.LessOrEqual(len(words), 5)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig()).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteAndReadTexts(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "messages.json")
	texts := []string{"Hello graph.", "Ping again?"}

	req.NoError(WriteTexts(texts, path))

	got, err := ReadTexts(path)
	req.NoError(err)
	req.Equal(texts, got)
}
