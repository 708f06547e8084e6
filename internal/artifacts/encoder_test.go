package artifacts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderRoundTrip(t *testing.T) {
	classes := []string{"Acer", "Apple", "Asus", "Dell", "HP", "Lenovo", "MSI", "Toshiba"}
	enc, err := NewLabelEncoder(classes)
	require.NoError(t, err)

	// encode(L) then decode(encode(L)) must return L for every trained label.
	for i, label := range classes {
		code, err := enc.Encode(label)
		require.NoError(t, err)
		assert.Equal(t, i, code)

		back, err := enc.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, label, back)
	}
}

func TestEncoderUnknownLabel(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"SSD", "HDD"})
	require.NoError(t, err)

	_, err = enc.Encode("Floppy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLabel))
}

func TestEncoderDecodeOutOfRange(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"Yes", "No"})
	require.NoError(t, err)

	_, err = enc.Decode(-1)
	assert.Error(t, err)
	_, err = enc.Decode(2)
	assert.Error(t, err)
}

func TestEncoderRejectsDuplicates(t *testing.T) {
	_, err := NewLabelEncoder([]string{"SSD", "HDD", "SSD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate class")
}

func TestEncoderRejectsEmpty(t *testing.T) {
	_, err := NewLabelEncoder(nil)
	assert.Error(t, err)
}

func TestEncoderClassesCopy(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"A", "B"})
	require.NoError(t, err)

	got := enc.Classes()
	got[0] = "mutated"

	code, err := enc.Encode("A")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
