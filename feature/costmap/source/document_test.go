package source

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage/mocks"
)

func TestDocumentLoader_LoadElements(t *testing.T) {
	// Quantities may arrive as numbers or strings; both must parse.
	payload := `[
		{"id": "w1", "ebkp": "C2.1", "area": 12.5},
		{"id": "w2", "ebkp": "C2.2", "area": "3.25", "volume": 1}
	]`

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "cost-data", "exports/elements.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(payload)), nil)

	l := NewDocumentLoader(client, "cost-data", "exports/elements.json")
	elements, err := l.LoadElements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, "w1", elements[0].ID)
	assert.Equal(t, 12.5, elements[0].Quantities[element.KindArea])
	assert.Equal(t, 3.25, elements[1].Quantities[element.KindArea])
	assert.Equal(t, 1.0, elements[1].Quantities[element.KindVolume])

	client.AssertExpectations(t)
}

func TestDocumentLoader_FetchError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "cost-data", "missing.json", mock.Anything).
		Return(nil, assert.AnError)

	l := NewDocumentLoader(client, "cost-data", "missing.json")
	_, err := l.LoadElements(context.Background())
	assert.Error(t, err)
}

func TestDocumentLoader_MalformedExport(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "cost-data", "exports/elements.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"not": "an array"}`)), nil)

	l := NewDocumentLoader(client, "cost-data", "exports/elements.json")
	_, err := l.LoadElements(context.Background())
	assert.Error(t, err)
}
