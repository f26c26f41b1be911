package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Print(&Record{
		Signature: "5hHxQWz2H7FNv7oNoDHTmqhAGZLDjW5dTgX1sazU",
		Slot:      "123456789",
		Fields: []Field{
			{Name: "mint", Value: "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "signature")
	assert.Contains(t, out, "5hHxQWz2H7FNv7oNoDHTmqhAGZLDjW5dTgX1sazU")
	assert.Contains(t, out, "slot")
	assert.Contains(t, out, "123456789")
	assert.Contains(t, out, "mint")
	assert.Contains(t, out, "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

	// Framed by a separator above and below.
	assert.Equal(t, 2, strings.Count(out, separator))
	assert.True(t, strings.HasPrefix(out, separator))
	assert.True(t, strings.HasSuffix(out, separator+"\n"))
}

func TestPrintRecord_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.Print(&Record{
		Signature: "sig",
		Slot:      "1",
		Fields: []Field{
			{Name: "mint", Value: "A"},
			{Name: "name", Value: "B"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Less(t, strings.Index(out, "mint"), strings.Index(out, "name"))
}
