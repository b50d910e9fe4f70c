package view

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lifewatch/src/universe"
)

func TestConsoleOutRun(t *testing.T) {
	var b bytes.Buffer
	out := NewConsoleOut(&b, false)
	s, err := universe.New(8, nil, universe.WithViewer(out))
	require.NoError(t, err)
	require.NoError(t, s.SettleTemplate("sample"))

	out.Configuration(s.Size(), time.Millisecond, 1000, s.Engine().Details())
	out.Start()
	require.NoError(t, s.Run(context.Background()))

	text := b.String()
	assert.Contains(t, text, "Running configuration:")
	assert.Contains(t, text, "  Dimension: 8 x 8\n")
	assert.Contains(t, text, "  engine: sparse\n")
	assert.Contains(t, text, "  Generations done: 10, population:")
	assert.Contains(t, text, "\nFinished:\n")
	assert.Contains(t, text, "  Generations: 17\n")
	assert.Contains(t, text, "  Population: 4\n")
	assert.Contains(t, text, "  Status: Stasis\n")
}

func TestConsoleOutCompare(t *testing.T) {
	var b bytes.Buffer
	out := NewConsoleOut(&b, false)
	r, err := universe.Compare(context.Background(), 10, func(s *universe.Simulation) error {
		return s.SettleTemplate("glider")
	}, 30)
	require.NoError(t, err)

	out.Compare(r)
	assert.Contains(t, b.String(), "Compared 30 generations on 10 x 10\n")
	assert.Contains(t, b.String(), "  full: population 4")
	assert.Contains(t, b.String(), "  sparse: population 4")
	assert.Contains(t, b.String(), "Engines are equivalent\n")

	b.Reset()
	r.DivergedAt = 3
	out.Compare(r)
	assert.Contains(t, b.String(), "Engines diverged at generation 3\n")
}
