package runner_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcbuild/internal/core/domain"
)

const multilibOutput = `.;
thumb/v7-m/nofp;@mthumb@march=armv7-m@mfloat-abi=soft

thumb/v7e-m+fp/hard;@mthumb@march=armv7e-m+fp@mfloat-abi=hard
`

func TestRun_NanoInstall(t *testing.T) {
	exec := &fakeExecutor{output: []byte(multilibOutput)}
	fs := newFakeFS().withSources(older, newlibNano)
	r := newRunner(exec, fs, &recordingLogger{}, domain.RunConfig{})

	require.NoError(t, r.Run(context.Background(), newlibNano))

	lines := exec.commandLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "/opt/tc/install/bin/arm-none-eabi-gcc -print-multi-lib", lines[2])
	assert.Empty(t, exec.commands[2].Dir)

	const build = "/opt/tc/build/newlib-nano/arm-none-eabi"
	const lib = "/opt/tc/install/arm-none-eabi/lib"
	want := []copyOp{}
	for _, m := range []string{"", "/thumb/v7-m/nofp", "/thumb/v7e-m+fp/hard"} {
		want = append(want,
			copyOp{src: build + m + "/newlib/libc.a", dst: lib + m + "/libc_nano.a"},
			copyOp{src: build + m + "/newlib/libg.a", dst: lib + m + "/libg_nano.a"},
			copyOp{src: build + m + "/newlib/libm.a", dst: lib + m + "/libm_nano.a"},
			copyOp{src: build + m + "/libgloss/arm/librdimon.a", dst: lib + m + "/librdimon_nano.a"},
		)
	}
	want = append(want, copyOp{
		src: build + "/newlib/targ-include/newlib.h",
		dst: "/opt/tc/install/arm-none-eabi/include/newlib-nano/newlib.h",
	})
	assert.Equal(t, want, fs.copies)
}

func TestRun_NanoInstallFailures(t *testing.T) {
	tests := []struct {
		name      string
		exec      *fakeExecutor
		copyErr   error
		wantErr   error
		wantCause error
	}{
		{
			name:      "compiler query fails",
			exec:      &fakeExecutor{outputErr: os.ErrNotExist},
			wantErr:   domain.ErrMultilibQuery,
			wantCause: os.ErrNotExist,
		},
		{
			name:    "compiler reports nothing",
			exec:    &fakeExecutor{output: []byte("\n")},
			wantErr: domain.ErrMultilibQuery,
		},
		{
			name:      "archive missing",
			exec:      &fakeExecutor{output: []byte(".;\n")},
			copyErr:   os.ErrNotExist,
			wantErr:   domain.ErrStageFailed,
			wantCause: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeFS().withSources(older, newlibNano)
			fs.copyErr = tt.copyErr
			r := newRunner(tt.exec, fs, &recordingLogger{}, domain.RunConfig{})

			err := r.Run(context.Background(), newlibNano)

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantCause != nil {
				assert.ErrorIs(t, err, tt.wantCause)
			}
		})
	}
}
