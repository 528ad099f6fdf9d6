package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"regio/log"
)

// OutPath returns the generated file path for a definition file: its base
// name with a _regs.go suffix, in outdir.
func OutPath(defpath, outdir string) string {
	base := strings.TrimSuffix(filepath.Base(defpath), filepath.Ext(defpath))
	return filepath.Join(outdir, base+"_regs.go")
}

// CompileFile loads, validates and generates one definition file, writing
// the result next to outdir. Nothing is written when the definition is
// invalid.
func CompileFile(defpath, outdir string) (string, error) {
	start := time.Now()
	d, err := Load(defpath)
	if err != nil {
		return "", err
	}
	buf, err := Generate(d)
	if err != nil {
		return "", fmt.Errorf("%s: %w", defpath, err)
	}
	out := OutPath(defpath, outdir)
	if err := os.WriteFile(out, buf, 0644); err != nil {
		return "", err
	}

	log.ModGen.DebugZ("bank compiled").
		String("def", defpath).
		String("out", out).
		String("bank", d.Bank).
		Int("regs", int64(len(d.Registers))).
		Duration("took", time.Since(start)).
		End()
	return out, nil
}

// CompileAll compiles every definition file concurrently. The first failure
// cancels the remaining work; on error the output directory may hold files
// for the definitions that succeeded, never for the one that failed.
func CompileAll(ctx context.Context, defpaths []string, outdir string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range defpaths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := CompileFile(p, outdir)
			return err
		})
	}
	return g.Wait()
}
