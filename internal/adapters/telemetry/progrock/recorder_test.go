package progrock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	tcprogrock "go.trai.ch/tcbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/tcbuild/internal/core/domain"
)

func TestRecorder_Timings(t *testing.T) {
	recorder := tcprogrock.New()
	ctx := context.Background()

	_, configure := recorder.Record(ctx, domain.VertexName("binutils", domain.StepConfigure))
	configure.Log(domain.LogLevelInfo, "up to date")
	configure.Cached()
	configure.Complete(nil)

	_, build := recorder.Record(ctx, domain.VertexName("binutils", domain.StepBuild))
	_, err := build.Stdout().Write([]byte("make: Entering directory\nCC as.o\n"))
	require.NoError(t, err)
	_, err = build.Stderr().Write([]byte("warning: unused\n"))
	require.NoError(t, err)
	build.Complete(errors.New("exit status 2"))

	require.NoError(t, recorder.Close())

	timings := recorder.Timings()
	require.Len(t, timings, 2)

	assert.Equal(t, "binutils: configure", timings[0].Name)
	assert.True(t, timings[0].Cached)
	assert.Zero(t, timings[0].Lines, "log messages are not command output")

	assert.Equal(t, "binutils: build", timings[1].Name)
	assert.True(t, timings[1].Failed)
	assert.Equal(t, 3, timings[1].Lines)
	assert.GreaterOrEqual(t, timings[1].Duration, time.Duration(0))
}

func TestRecorder_ForwardsToWriter(t *testing.T) {
	tape := progrock.NewTape()
	recorder := tcprogrock.NewRecorder(tape)

	_, v := recorder.Record(context.Background(), domain.VertexName("newlib", domain.StepInstall))
	v.Complete(nil)
	require.NoError(t, recorder.Close())

	vertices := tape.Vertices()
	require.Len(t, vertices, 1)
	assert.Equal(t, "newlib: install", vertices[0].GetName())
	assert.NotNil(t, vertices[0].GetCompleted())
	assert.True(t, tape.Closed())
}

func TestRecorder_NoSteps(t *testing.T) {
	recorder := tcprogrock.New()
	require.NoError(t, recorder.Close())
	assert.Empty(t, recorder.Timings())
}
