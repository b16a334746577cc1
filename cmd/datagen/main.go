package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/graphmsg/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		count       = flag.Int("count", cfg.NumMessages, "number of messages to generate")
		minWords    = flag.Int("min-words", cfg.MinWords, "minimum words per message")
		maxWords    = flag.Int("max-words", cfg.MaxWords, "maximum words per message")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		output      = flag.String("output", "seed-data/messages.json", "file to write the JSON array of texts to")
		writeStdout = flag.Bool("stdout", false, "write texts to stdout instead of a file")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(generator.Config{
		NumMessages: *count,
		MinWords:    *minWords,
		MaxWords:    *maxWords,
		Seed:        *seed,
	})
	texts, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(texts); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write texts to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteTexts(texts, *output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write texts: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d messages into %s\n", len(texts), *output)
}
