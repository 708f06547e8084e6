package artifacts

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when a label is not part of an encoder's
// trained vocabulary. Callers must treat this as a recoverable input error
// and never substitute a default code.
var ErrUnknownLabel = errors.New("unknown label")

// LabelEncoder is a fixed bijection between a finite set of string labels
// and integer codes. The code of a label is its index in the trained class
// order, matching the ordering the model was fitted against.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder from an ordered class list.
// Duplicate classes are rejected because they would break the bijection.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder requires at least one class")
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		index[c] = i
	}

	return &LabelEncoder{
		classes: append([]string(nil), classes...),
		index:   index,
	}, nil
}

// Encode translates a trained label to its integer code.
func (e *LabelEncoder) Encode(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return code, nil
}

// Decode translates an integer code back to its label.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Classes returns the trained labels in code order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Len returns the vocabulary size.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
