package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifacts(t *testing.T, model, encoders, columns string) Paths {
	t.Helper()
	dir := t.TempDir()

	p := Paths{
		Model:    filepath.Join(dir, "model.json"),
		Encoders: filepath.Join(dir, "encoders.json"),
		Columns:  filepath.Join(dir, "feature_columns.json"),
	}
	require.NoError(t, os.WriteFile(p.Model, []byte(model), 0o600))
	require.NoError(t, os.WriteFile(p.Encoders, []byte(encoders), 0o600))
	require.NoError(t, os.WriteFile(p.Columns, []byte(columns), 0o600))
	return p
}

const validModel = `{
	"version": "v1",
	"features": 3,
	"nodes": [
		{"feature_idx": 1, "threshold": 8, "left_child": 1, "right_child": 2, "is_leaf": false},
		{"feature_idx": -1, "threshold": 0, "left_child": -1, "right_child": -1, "value": 500, "is_leaf": true},
		{"feature_idx": -1, "threshold": 0, "left_child": -1, "right_child": -1, "value": 1500, "is_leaf": true}
	]
}`

const validEncoders = `{
	"Company": ["Apple", "Dell", "HP"],
	"OS": ["Linux", "Windows"]
}`

const validColumns = `["Company", "Ram", "OS"]`

func TestLoadBundle(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, validColumns)

	b, err := Load(p)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, "v1", b.Model.Version())
	assert.Len(t, b.Encoders, 2)
	assert.Equal(t, []string{"Company", "Ram", "OS"}, b.Columns)
	assert.False(t, b.LoadedAt.IsZero())
}

func TestLoadMissingModel(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, validColumns)
	p.Model = filepath.Join(t.TempDir(), "nope.json")

	b, err := Load(p)
	assert.Error(t, err)
	assert.Nil(t, b)
}

func TestLoadMissingEncoders(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, validColumns)
	p.Encoders = filepath.Join(t.TempDir(), "nope.json")

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadCorruptEncoders(t *testing.T) {
	p := writeArtifacts(t, validModel, `{"Company": [}`, validColumns)

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadEmptyEncoders(t *testing.T) {
	p := writeArtifacts(t, validModel, `{}`, validColumns)

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadDuplicateColumns(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, `["Company", "Ram", "Company"]`)

	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate schema column")
}

func TestLoadEmptyColumns(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, `[]`)

	_, err := Load(p)
	assert.Error(t, err)
}

func TestBundleOptions(t *testing.T) {
	p := writeArtifacts(t, validModel, validEncoders, validColumns)
	b, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"Apple", "Dell", "HP"}, b.Options("Company"))
	assert.Nil(t, b.Options("Ram")) // numeric feature, no encoder

	enc, ok := b.Encoder("OS")
	require.True(t, ok)
	assert.Equal(t, 2, enc.Len())

	_, ok = b.Encoder("Weight")
	assert.False(t, ok)
}
