// Package artifacts loads the pre-trained model bundle the service depends
// on: the serialized regression tree, one label encoder per categorical
// feature, and the ordered feature schema the model expects as input.
//
// All three artifacts are loaded once at startup and are immutable for the
// lifetime of the process. A missing or corrupt artifact is a fatal startup
// condition; the caller is expected to halt before accepting any input.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"laptop-pricer/internal/ml"
)

// Paths locates the three artifact files on disk.
type Paths struct {
	Model    string
	Encoders string
	Columns  string
}

// Bundle is the read-only artifact store: model, encoders and schema.
type Bundle struct {
	Model    *ml.RegressionTree
	Encoders map[string]*LabelEncoder
	Columns  []string
	LoadedAt time.Time
}

// Load reads and validates all artifacts. Any failure makes the whole
// bundle unusable, so the first error wins and nothing partial is returned.
func Load(p Paths) (*Bundle, error) {
	model, err := ml.LoadTree(p.Model)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", p.Model, err)
	}

	encoders, err := loadEncoders(p.Encoders)
	if err != nil {
		return nil, fmt.Errorf("load encoders %s: %w", p.Encoders, err)
	}

	columns, err := loadColumns(p.Columns)
	if err != nil {
		return nil, fmt.Errorf("load feature columns %s: %w", p.Columns, err)
	}

	b := &Bundle{
		Model:    model,
		Encoders: encoders,
		Columns:  columns,
		LoadedAt: time.Now(),
	}

	log.Info().
		Str("model_version", model.Version()).
		Int("encoders", len(encoders)).
		Int("columns", len(columns)).
		Msg("artifact bundle loaded")

	return b, nil
}

// Encoder returns the encoder for a categorical feature.
func (b *Bundle) Encoder(feature string) (*LabelEncoder, bool) {
	enc, ok := b.Encoders[feature]
	return enc, ok
}

// Options returns the vocabulary for a categorical feature, or nil if the
// feature has no encoder. Used to populate form dropdowns.
func (b *Bundle) Options(feature string) []string {
	enc, ok := b.Encoders[feature]
	if !ok {
		return nil
	}
	return enc.Classes()
}

func loadEncoders(path string) (map[string]*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse encoders: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("encoders file contains no encoders")
	}

	encoders := make(map[string]*LabelEncoder, len(raw))
	for feature, classes := range raw {
		enc, err := NewLabelEncoder(classes)
		if err != nil {
			return nil, fmt.Errorf("encoder %s: %w", feature, err)
		}
		encoders[feature] = enc
	}
	return encoders, nil
}

func loadColumns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("parse feature columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("feature column list is empty")
	}

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate schema column %q", c)
		}
		seen[c] = true
	}
	return columns, nil
}
