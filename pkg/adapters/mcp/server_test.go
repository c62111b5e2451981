package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/transposer/pkg/adapters/memory"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTranspose(t *testing.T) {
	s := NewServer(nil)
	ctx := context.Background()

	resp, err := s.handleTranspose(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"text": "I (B) V",
		"from": "A",
		"to":   "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "I (D) V", resp.Text)
	assert.Equal(t, 1, resp.Annotations)
	assert.False(t, resp.Truncated)

	resp, err = s.handleTranspose(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"text": "i (c) iv (",
		"from": "a",
		"to":   "e",
		"mode": "minor",
	})
	require.NoError(t, err)
	assert.Equal(t, "i (g) iv (", resp.Text)
	assert.True(t, resp.Truncated)
	assert.Equal(t, 9, resp.UnmatchedAt)

	_, err = s.handleTranspose(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"text": "I (X) V",
		"from": "A",
		"to":   "C",
	})
	assert.ErrorIs(t, err, domain.ErrUnmappedNote)

	_, err = s.handleTranspose(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"text": "I",
		"from": "A",
	})
	assert.ErrorContains(t, err, "to:")
}

func TestHandleBuildScale(t *testing.T) {
	s := NewServer(nil)

	resp, err := s.handleBuildScale(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"tonic": "Eb",
	})
	require.NoError(t, err)
	assert.Equal(t, "flat", resp.Convention)
	assert.Equal(t, []string{"E♭", "E", "F", "G♭", "G", "A♭", "A", "B♭", "B", "C♭", "C", "D♭", "D"}, resp.Notes)

	resp, err = s.handleBuildScale(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"tonic": "d",
		"mode":  "minor",
	})
	require.NoError(t, err)
	assert.Equal(t, "flat", resp.Convention)
	assert.Equal(t, "D", resp.Notes[0])

	_, err = s.handleBuildScale(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"tonic": "E#",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownKey)
}

func TestHandleBuildKeyMap(t *testing.T) {
	s := NewServer(nil)

	resp, err := s.handleBuildKeyMap(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"from": "C",
		"to":   "C",
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 12)
	for _, e := range resp.Entries {
		assert.Equal(t, e.From, e.To)
	}

	_, err = s.handleBuildKeyMap(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"from": "C",
		"to":   "D",
		"mode": "dorian",
	})
	assert.Error(t, err)
}

func TestReadResult(t *testing.T) {
	sink := memory.NewSink()
	d := domain.NewDestination(domain.Key{Tonic: "C", Mode: domain.Major})
	require.NoError(t, sink.Write(context.Background(), ports.Result{Piece: "chorale", Destination: d, Text: "I (D) V"}))

	s := NewServer(sink)

	var req mcp.ReadResourceRequest
	req.Params.URI = "transposer://results/chorale/c_maj"
	contents, err := s.readResult(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "I (D) V", text.Text)

	req.Params.URI = "transposer://results/chorale/d_maj"
	_, err = s.readResult(context.Background(), req)
	assert.ErrorIs(t, err, ports.ErrResultNotFound)

	req.Params.URI = "transposer://results/chorale"
	_, err = s.readResult(context.Background(), req)
	assert.Error(t, err)
}
