package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-scene", "a.toml", "-format", "json", "-log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "a.toml", opts.scenePath)
	assert.Equal(t, "json", opts.format)
	assert.Equal(t, "debug", opts.logLevel)
	assert.False(t, opts.watch)

	_, err = parseFlags([]string{"-format", "xml"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-watch"})
	assert.Error(t, err)
}

func TestRunSample(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &options{logLevel: "error", format: "text"}, &out))
	assert.Contains(t, out.String(), `scene "testbed" (strict)`)
	assert.Contains(t, out.String(), "model origin")

	out.Reset()
	require.NoError(t, run(context.Background(), &options{logLevel: "error", format: "json"}, &out))
	var decoded struct {
		Scene   string           `json:"scene"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "testbed", decoded.Scene)
	assert.Len(t, decoded.Results, 4)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), &options{logLevel: "loud", format: "text"}, &out))
	assert.Error(t, run(context.Background(), &options{scenePath: "missing.toml", logLevel: "error", format: "text"}, &out))
}
