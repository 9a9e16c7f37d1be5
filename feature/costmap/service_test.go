package costmap

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/costtree"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage/mocks"
)

const exportPayload = `[
	{"id": "w1", "ebkp": "C2.1", "area": 12.5},
	{"id": "w2", "ebkp": "C3.1", "area": 8}
]`

func newTestService(t *testing.T, payload string) (*Service, *mocks.Client) {
	t.Helper()

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "cost-data", "exports/elements.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(payload)), nil)

	cfg := Config{
		CacheTTLSeconds:    300,
		ElementsObject:     "exports/elements.json",
		Table:              "model_elements",
		LoadTimeoutSeconds: 5,
	}
	return NewService(client, "cost-data", zap.NewNop(), nil, cfg), client
}

func TestService_LoadElements_StorageFallback(t *testing.T) {
	// With no database connection the service reads the storage export.
	svc, client := newTestService(t, exportPayload)

	elements, err := svc.LoadElements(context.Background())
	require.NoError(t, err)
	assert.Len(t, elements, 2)
	client.AssertExpectations(t)
}

func TestService_ApplyMapping(t *testing.T) {
	svc, _ := newTestService(t, exportPayload)

	tree := &costtree.Node{Code: "C2", Children: []*costtree.Node{
		{Code: "C2.1", Quantity: 3, UnitPrice: 100, Total: 300},
		{Code: "C9.9", Quantity: 2, UnitPrice: 50},
	}}

	result, total, err := svc.ApplyMapping(context.Background(), tree, nil)
	require.NoError(t, err)

	// Matched leaf repriced from the model, unmatched leaf priced as-is.
	assert.Equal(t, 12.5*100+2*50, total)
	assert.Equal(t, 1, result.Summary.Matched)
	assert.Equal(t, 1, result.Summary.Unmatched)

	// Input tree untouched.
	assert.Equal(t, 3.0, tree.Children[0].Quantity)
}

func TestService_ApplyMapping_InlineElements(t *testing.T) {
	// Inline elements skip the configured source entirely.
	client := new(mocks.Client)
	cfg := Config{CacheTTLSeconds: 300, ElementsObject: "exports/elements.json", LoadTimeoutSeconds: 5}
	svc := NewService(client, "cost-data", zap.NewNop(), nil, cfg)

	inline := []element.Element{{
		ID:         "w9",
		Code:       "C4.4",
		Quantities: map[element.Kind]float64{element.KindArea: 2},
	}}
	tree := &costtree.Node{Code: "C4.4", UnitPrice: 10}

	result, total, err := svc.ApplyMapping(context.Background(), tree, inline)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)
	assert.Equal(t, 1, result.Summary.Matched)
	client.AssertNotCalled(t, "GetObject")
}

func TestService_ApplyMapping_InvalidTree(t *testing.T) {
	svc, _ := newTestService(t, exportPayload)

	a := &costtree.Node{Code: "A"}
	b := &costtree.Node{Code: "B", Children: []*costtree.Node{a}}
	a.Children = []*costtree.Node{b}

	_, _, err := svc.ApplyMapping(context.Background(), a, nil)
	assert.ErrorIs(t, err, costtree.ErrInvalidTree)
}

func TestService_BulkMatches_CachedUntilForced(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "cost-data", "exports/elements.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(exportPayload)), nil).Once()
	client.On("GetObject", mock.Anything, "cost-data", "exports/elements.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(exportPayload)), nil)

	cfg := Config{CacheTTLSeconds: 300, ElementsObject: "exports/elements.json", LoadTimeoutSeconds: 5}
	svc := NewService(client, "cost-data", zap.NewNop(), nil, cfg)

	first, err := svc.BulkMatches(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.BulkMatches(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	svc.InvalidateMatches()
	third, err := svc.BulkMatches(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}
