package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// nanoFile maps a file of the nano build tree to its name in the prefix.
type nanoFile struct {
	from string
	to   string
}

// nanoArchives are staged once per multilib directory.
var nanoArchives = []nanoFile{
	{from: "newlib/libc.a", to: "libc_nano.a"},
	{from: "newlib/libg.a", to: "libg_nano.a"},
	{from: "newlib/libm.a", to: "libm_nano.a"},
	{from: "libgloss/arm/librdimon.a", to: "librdimon_nano.a"},
}

// installNano stages the reduced-footprint C library next to the full one
// instead of running make install.
func (r *Runner) installNano(ctx context.Context, p domain.Project) error {
	r.logger.Info(p.Name + ": " + string(domain.StepInstall))

	ctx, v := r.telemetry.Record(ctx, domain.VertexName(p.Name, domain.StepInstall))
	staged, err := r.stageNano(ctx, p)
	if err == nil {
		v.Log(domain.LogLevelInfo, "staged "+strconv.Itoa(staged)+" files")
	}
	v.Complete(err)
	return err
}

func (r *Runner) stageNano(ctx context.Context, p domain.Project) (int, error) {
	multilibs, err := r.multilibs(ctx)
	if err != nil {
		return 0, err
	}

	targetBuild := filepath.Join(r.layout.BuildDir(p), r.layout.Target)
	staged := 0

	for _, m := range multilibs {
		srcDir := filepath.Join(targetBuild, m)
		dstDir := filepath.Join(r.layout.TargetLibDir(), m)
		for _, f := range nanoArchives {
			if err := r.stage(filepath.Join(srcDir, f.from), filepath.Join(dstDir, f.to)); err != nil {
				return staged, err
			}
			staged++
		}
	}

	header := filepath.Join(targetBuild, "newlib", "targ-include", "newlib.h")
	if err := r.stage(header, filepath.Join(r.layout.TargetIncludeDir(), "newlib-nano", "newlib.h")); err != nil {
		return staged, err
	}
	return staged + 1, nil
}

func (r *Runner) stage(src, dst string) error {
	if err := r.fs.CopyFile(src, dst); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "cannot stage "+filepath.Base(src)), "source", src)
		return errors.Join(domain.ErrStageFailed, zerr.With(wrapped, "destination", dst))
	}
	return nil
}

// multilibs asks the installed cross compiler for its multilib directories.
func (r *Runner) multilibs(ctx context.Context) ([]string, error) {
	cmd := domain.Command{
		Path: r.layout.CompilerPath(),
		Args: []string{"-print-multi-lib"},
		Env:  r.env(),
	}

	out, err := r.executor.Output(ctx, cmd)
	if err != nil {
		return nil, errors.Join(domain.ErrMultilibQuery, zerr.With(zerr.Wrap(err, "compiler query failed"), "command", cmd.String()))
	}

	dirs := parseMultilibs(out)
	if len(dirs) == 0 {
		if r.cfg.DryRun {
			r.logger.Info("multilib archives are staged for every directory reported by " + cmd.String())
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrMultilibQuery, "compiler reported no multilibs"), "command", cmd.String())
	}
	return dirs, nil
}

// parseMultilibs extracts the directory part of every "dir;@flag@flag" line.
// The default multilib is reported as ".".
func parseMultilibs(out []byte) []string {
	var dirs []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		dir, _, _ := strings.Cut(line, ";")
		if dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}
