package repository

import (
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/graphmsg/backend/internal/domain"
	"github.com/graphmsg/backend/internal/graph"
)

// ErrDecode reports a returned node that does not have the Message shape.
var ErrDecode = errors.New("decode message")

// nodeBinding is the name every message query binds its node to.
const nodeBinding = "n"

func messageFromRecord(rec graph.Record) (domain.Message, error) {
	value, ok := rec[nodeBinding]
	if !ok {
		return domain.Message{}, fmt.Errorf("%w: record has no %q binding", ErrDecode, nodeBinding)
	}
	return toMessage(value)
}

func toMessage(value any) (domain.Message, error) {
	props, err := nodeProperties(value)
	if err != nil {
		return domain.Message{}, err
	}

	id, err := stringProperty(props, "id")
	if err != nil {
		return domain.Message{}, err
	}
	text, err := stringProperty(props, "text")
	if err != nil {
		return domain.Message{}, err
	}

	return domain.Message{ID: id, Text: text}, nil
}

func nodeProperties(value any) (map[string]any, error) {
	switch v := value.(type) {
	case neo4j.Node:
		return v.Props, nil
	case *neo4j.Node:
		if v == nil {
			return nil, fmt.Errorf("%w: nil node", ErrDecode)
		}
		return v.Props, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unexpected value of type %T", ErrDecode, value)
	}
}

func stringProperty(props map[string]any, key string) (string, error) {
	raw, ok := props[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrDecode, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, not string", ErrDecode, key, raw)
	}
	return s, nil
}
