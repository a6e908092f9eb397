package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringInput(name, content string) FileInput {
	return FileInput{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func failingInput(name string) FileInput {
	return FileInput{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk unplugged")
		},
	}
}

func TestReader_ReadAllPreservesInputOrder(t *testing.T) {
	r := NewReader(0)

	docs := r.ReadAll(context.Background(), []FileInput{
		stringInput("a.txt", "alpha"),
		stringInput("b.txt", "beta"),
		stringInput("c.txt", "gamma"),
	})

	require.Len(t, docs, 3)
	assert.Equal(t, "a.txt", docs[0].Name)
	assert.Equal(t, "alpha", docs[0].Content)
	assert.Equal(t, "b.txt", docs[1].Name)
	assert.Equal(t, "beta", docs[1].Content)
	assert.Equal(t, "c.txt", docs[2].Name)
	assert.Equal(t, "gamma", docs[2].Content)
}

func TestReader_FailedFileYieldsEmptyDocument(t *testing.T) {
	r := NewReader(0)

	docs := r.ReadAll(context.Background(), []FileInput{
		stringInput("ok.txt", "fine"),
		failingInput("broken.txt"),
		stringInput("also-ok.txt", "still fine"),
	})

	require.Len(t, docs, 3)
	assert.Equal(t, "fine", docs[0].Content)
	// One bad file does not abort its siblings
	assert.Equal(t, "broken.txt", docs[1].Name)
	assert.Empty(t, docs[1].Content)
	assert.Equal(t, "still fine", docs[2].Content)
}

func TestReader_AssignsIDAndTimestamp(t *testing.T) {
	r := NewReader(0)

	docs := r.ReadAll(context.Background(), []FileInput{
		stringInput("a.txt", "alpha"),
		stringInput("b.txt", "beta"),
	})

	require.Len(t, docs, 2)
	assert.NotEmpty(t, docs[0].ID)
	assert.NotEmpty(t, docs[1].ID)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
	assert.False(t, docs[0].UploadDate.IsZero())
}

func TestReader_CapsFileSize(t *testing.T) {
	r := NewReader(4)

	docs := r.ReadAll(context.Background(), []FileInput{
		stringInput("big.txt", "0123456789"),
	})

	require.Len(t, docs, 1)
	assert.Equal(t, "0123", docs[0].Content)
}

func TestReader_EmptyBatch(t *testing.T) {
	r := NewReader(0)
	docs := r.ReadAll(context.Background(), nil)
	assert.Empty(t, docs)
}
