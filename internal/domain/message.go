package domain

// Message is a node labelled Message in the graph. ID is assigned at creation
// and never changes; Text is the only mutable field.
type Message struct {
	ID   string
	Text string
}
