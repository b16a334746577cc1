package generator

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Generator produces synthetic message texts for seeding a local graph.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumMessages <= 0 {
		cfg.NumMessages = defaults.NumMessages
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = defaults.MinWords
	}
	if cfg.MaxWords < cfg.MinWords {
		cfg.MaxWords = cfg.MinWords
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises message texts. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	texts := make([]string, g.cfg.NumMessages)
	for i := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		texts[i] = g.sentence()
	}
	return texts, nil
}

func (g *Generator) sentence() string {
	n := g.cfg.MinWords + g.rand.Intn(g.cfg.MaxWords-g.cfg.MinWords+1)
	words := make([]string, n)
	for i := range words {
		words[i] = vocabulary[g.rand.Intn(len(vocabulary))]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + punctuation[g.rand.Intn(len(punctuation))]
}

var punctuation = []string{".", ".", ".", "!", "?"}

var vocabulary = []string{
	"graph", "node", "message", "hello", "world", "server", "query", "match",
	"create", "update", "label", "edge", "token", "bearer", "shared", "session",
	"driver", "record", "field", "text", "today", "again", "later", "quick",
	"note", "reply", "thread", "ping", "status", "check", "deploy", "local",
}
