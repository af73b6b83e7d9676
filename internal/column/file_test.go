package column

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-priceest/internal/model"
)

func writeColumnFile(t *testing.T, name string, values []int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestOpenFilePriceValRoundTrip(t *testing.T) {
	path := writeColumnFile(t, "prices.bin", []int64{100, 200, -50})

	f, err := OpenFile(path, PriceValDecoder)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 3, f.Size())
	assert.Equal(t, model.PriceVal(100), f.At(0))
	assert.Equal(t, model.PriceVal(200), f.At(1))
	assert.Equal(t, model.PriceVal(-50), f.At(2))
}

func TestOpenFilePriceIntervalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intervals.bin")
	values := []float64{0.5, 1.25}
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	f, err := OpenFile(path, PriceIntervalDecoder)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, model.PriceInterval(0.5), f.At(0))
	assert.Equal(t, model.PriceInterval(1.25), f.At(1))
}

func TestOpenFileRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := OpenFile(path, PriceValDecoder)
	assert.Error(t, err)
}

func TestOpenFileRejectsMisalignedLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := OpenFile(path, PriceValDecoder)
	assert.Error(t, err)
}
