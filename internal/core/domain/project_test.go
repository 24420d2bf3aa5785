package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tcbuild/internal/core/domain"
)

func TestPredicate_Eval(t *testing.T) {
	built := domain.StateSnapshot{"gcc-bootstrap": {}}
	tools := map[string]bool{"arm-none-eabi-gcc": true}
	hasTool := func(name string) bool { return tools[name] }

	tests := []struct {
		name string
		pred domain.Predicate
		want bool
	}{
		{"always", domain.Always, true},
		{"built", domain.BuiltThisRun("gcc-bootstrap"), true},
		{"not built", domain.BuiltThisRun("binutils"), false},
		{"tool missing but present", domain.ToolMissing("arm-none-eabi-gcc"), false},
		{"tool missing", domain.ToolMissing("arm-none-eabi-ld"), true},
		{"tool present", domain.ToolPresent("arm-none-eabi-gcc"), true},
		{"negated", domain.BuiltThisRun("gcc-bootstrap").Negate(), false},
		{"negated always", domain.Always.Negate(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Eval(built, hasTool))
		})
	}
}

func TestPredicate_String(t *testing.T) {
	assert.Equal(t, "none", domain.Always.String())
	assert.Equal(t, "tool-missing(arm-none-eabi-gcc)", domain.ToolMissing("arm-none-eabi-gcc").String())
	assert.Equal(t, "not built-this-run(gcc)", domain.BuiltThisRun("gcc").Negate().String())
}

func TestProject_Source(t *testing.T) {
	assert.Equal(t, "binutils", domain.Project{Name: "binutils"}.Source())
	assert.Equal(t, "gcc", domain.Project{Name: "gcc-bootstrap", SourceSubdir: "gcc"}.Source())
}

func TestInstallAction_String(t *testing.T) {
	assert.Equal(t, "default", domain.InstallDefault.String())
	assert.Equal(t, "nano", domain.InstallNano.String())
}
