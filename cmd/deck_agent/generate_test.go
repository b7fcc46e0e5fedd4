package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/deck-generator/internal/config"
	"github.com/jonathan/deck-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTopic_Inline(t *testing.T) {
	topic, err := resolveTopic(context.Background(), &config.Config{}, "the silk road")
	require.NoError(t, err)
	assert.Equal(t, "the silk road", topic)
}

func TestResolveTopic_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic.txt")
	require.NoError(t, os.WriteFile(path, []byte("The silk road\n\nTrade routes across Asia"), 0o644))

	topic, err := resolveTopic(context.Background(), &config.Config{TopicFile: path}, "")
	require.NoError(t, err)
	assert.Contains(t, topic, "Trade routes across Asia")
}

func TestResolveTopic_NoSource(t *testing.T) {
	_, err := resolveTopic(context.Background(), &config.Config{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided")
}

func TestResolveTopic_MultipleSources(t *testing.T) {
	cfg := &config.Config{TopicFile: "topic.txt"}
	_, err := resolveTopic(context.Background(), cfg, "inline topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestWriteDocument(t *testing.T) {
	doc := &types.Document{
		Title: "Test Deck",
		Slides: []types.Slide{
			{Title: "Test Deck", Layers: []types.Layer{{Type: types.LayerText, Content: "Test Deck"}}},
		},
	}

	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, writeDocument(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded types.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Test Deck", decoded.Title)
}
