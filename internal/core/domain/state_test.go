package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tcbuild/internal/core/domain"
)

func TestToolchainState(t *testing.T) {
	s := domain.NewToolchainState()
	assert.False(t, s.Built("binutils"))
	assert.Empty(t, s.Names())

	s.MarkBuilt("binutils")
	s.MarkBuilt("newlib")
	s.MarkBuilt("binutils")

	assert.True(t, s.Built("binutils"))
	assert.Equal(t, []string{"binutils", "newlib"}, s.Names())
}

func TestToolchainState_SnapshotIsDetached(t *testing.T) {
	s := domain.NewToolchainState()
	s.MarkBuilt("binutils")

	snap := s.Snapshot()
	s.MarkBuilt("gcc-bootstrap")

	assert.True(t, snap.Built("binutils"))
	assert.False(t, snap.Built("gcc-bootstrap"))
	assert.True(t, s.Snapshot().Built("gcc-bootstrap"))
}
