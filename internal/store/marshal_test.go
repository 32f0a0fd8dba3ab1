package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scalediv/internal/config"
)

func TestMarshalAxis_Canonical(t *testing.T) {
	maxMinor := 0
	a := config.Axis{
		Name:     "y",
		Engine:   "log",
		Min:      config.Number(1),
		Max:      config.Number(1000),
		MaxMinor: &maxMinor,
		Base:     10,
		Margins:  &config.Margins{Upper: 0.5},
	}

	data, hash, err := marshalAxis(a)
	require.NoError(t, err)

	assert.Equal(t, `{"base":10,"engine":"log","margins":{"upper":0.5},"max":1000,"max_minor":0,"min":1,"name":"y"}`, data)
	assert.Len(t, hash, 64)

	// same value, same hash
	_, again, err := marshalAxis(a)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	back, err := unmarshalAxis(data)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestMarshalAxis_DateBounds(t *testing.T) {
	a := config.Axis{Name: "t", Engine: "time", Min: config.Date("2024-01-01"), Max: config.Number(0)}

	data, _, err := marshalAxis(a)
	require.NoError(t, err)
	assert.Equal(t, `{"engine":"time","max":0,"min":"2024-01-01","name":"t"}`, data)
}

func TestUnmarshalAxis_InvalidJSON(t *testing.T) {
	_, err := unmarshalAxis("{not json")
	assert.Error(t, err)
}

func TestMarshalSnapshot(t *testing.T) {
	snap := createTestSnapshot("x", 10)

	data, hash, err := marshalSnapshot(snap)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	back, err := unmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestUnmarshalSnapshot_InvalidJSON(t *testing.T) {
	_, err := unmarshalSnapshot("[")
	assert.Error(t, err)
}
