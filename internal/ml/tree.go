package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// TreeNode is one node of a flattened regression tree. Internal nodes route
// on FeatureIdx against Threshold; leaves carry the predicted value.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeFile struct {
	Version   string     `json:"version"`
	TrainedAt time.Time  `json:"trained_at"`
	Features  int        `json:"features"`
	Nodes     []TreeNode `json:"nodes"`
}

// RegressionTree predicts a scalar price from a fixed-order feature vector.
// Trees are trained offline and serialized as a JSON node array; the
// in-process representation is read-only.
type RegressionTree struct {
	nodes     []TreeNode
	version   string
	trainedAt time.Time
	features  int
}

// LoadTree reads a serialized regression tree from disk.
func LoadTree(path string) (*RegressionTree, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f treeFile
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}

	return NewRegressionTree(f.Nodes, f.Version, f.TrainedAt, f.Features)
}

// NewRegressionTree builds a tree from an already-parsed node array and
// verifies its structural integrity up front so Predict never walks out of
// bounds.
func NewRegressionTree(nodes []TreeNode, version string, trainedAt time.Time, features int) (*RegressionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("model has no nodes")
	}

	for i, n := range nodes {
		if n.IsLeaf {
			continue
		}
		if n.FeatureIdx < 0 {
			return nil, fmt.Errorf("node %d: negative feature index", i)
		}
		if features > 0 && n.FeatureIdx >= features {
			return nil, fmt.Errorf("node %d: feature index %d exceeds feature count %d", i, n.FeatureIdx, features)
		}
		if n.LeftChild < 0 || n.LeftChild >= len(nodes) || n.RightChild < 0 || n.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: child index out of range", i)
		}
	}

	return &RegressionTree{
		nodes:     nodes,
		version:   version,
		trainedAt: trainedAt,
		features:  features,
	}, nil
}

// Predict walks the tree for a single feature vector and returns the leaf
// value. The vector must be in the schema order the tree was trained on.
func (t *RegressionTree) Predict(features []float64) (float64, error) {
	if len(t.nodes) == 0 {
		return 0, errors.New("model not loaded")
	}
	if t.features > 0 && len(features) != t.features {
		return 0, fmt.Errorf("expected %d features, got %d", t.features, len(features))
	}

	idx := 0
	for hops := 0; hops <= len(t.nodes); hops++ {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx >= len(features) {
			return 0, fmt.Errorf("feature index %d out of range", node.FeatureIdx)
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0, errors.New("cycle detected in tree")
}

// Version reports the model version recorded at training time.
func (t *RegressionTree) Version() string {
	if t.version == "" {
		return "unversioned"
	}
	return t.version
}

// TrainedAt reports when the model was trained; zero if unrecorded.
func (t *RegressionTree) TrainedAt() time.Time {
	return t.trainedAt
}

// FeatureCount returns the expected input width, 0 if the model file did
// not record one.
func (t *RegressionTree) FeatureCount() int {
	return t.features
}
