package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCSVExtension(t *testing.T) {
	assert.NoError(t, CheckCSVExtension("phones.csv"))
	assert.NoError(t, CheckCSVExtension("PHONES.CSV"))
	assert.ErrorIs(t, CheckCSVExtension("phones.xlsx"), ErrNotCSV)
	assert.ErrorIs(t, CheckCSVExtension("phones"), ErrNotCSV)
	assert.ErrorIs(t, CheckCSVExtension("phones.csv.txt"), ErrNotCSV)
}

func TestRowReaderHeaderKeying(t *testing.T) {
	in := "Brand, MODEL ,price_pkr\nApple,iPhone 15,  Rs 334999 \nSamsung,Galaxy S24,\n"

	rr, err := NewRowReader(strings.NewReader(in))
	require.NoError(t, err)

	row, line, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, line)
	assert.Equal(t, "Apple", row["brand"])
	assert.Equal(t, "iPhone 15", row["model"])
	assert.Equal(t, "Rs 334999", row["price_pkr"], "values are trimmed")

	row, line, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, line)
	assert.Equal(t, "Samsung", row["brand"])
	_, present := row["price_pkr"]
	assert.False(t, present, "empty values are dropped from the row map")

	_, _, err = rr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestRowReaderShortRow(t *testing.T) {
	// Fewer fields than the header is not an error: missing columns are
	// simply absent.
	in := "brand,model,os\nApple,iPhone SE\n"

	rr, err := NewRowReader(strings.NewReader(in))
	require.NoError(t, err)

	row, _, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, "iPhone SE", row["model"])
	_, present := row["os"]
	assert.False(t, present)
}

func TestRowReaderMalformedLine(t *testing.T) {
	in := "brand,model\nApple,iPhone 15\n\"unterminated,oops\nSamsung,Galaxy S24\n"

	rr, err := NewRowReader(strings.NewReader(in))
	require.NoError(t, err)

	_, line, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, line)

	_, line, err = rr.Next()
	require.Error(t, err, "malformed quoting is surfaced per row")
	assert.Equal(t, 2, line)
}

func TestRowReaderEmptyHeader(t *testing.T) {
	_, err := NewRowReader(strings.NewReader(""))
	assert.Error(t, err)
}
