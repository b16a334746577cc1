package generator

// Config drives the synthetic message generator.
type Config struct {
	NumMessages int
	MinWords    int
	MaxWords    int
	Seed        int64
}

// DefaultConfig returns baseline settings for a local seed dataset.
func DefaultConfig() Config {
	return Config{
		NumMessages: 500,
		MinWords:    3,
		MaxWords:    16,
		Seed:        42,
	}
}
