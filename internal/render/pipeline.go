// Package render turns a populated invoice into a finished document by
// writing template fragments into a scoped temporary workspace, running the
// external typesetting tool there, and relocating its output artifact. The
// workspace is released on every exit path; a generation run leaves either
// one artifact at the destination or nothing at all.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
)

// Pipeline is the document generation pipeline. One pipeline serves one
// session; only one generation may be in flight system-wide, enforced by
// the exclusively-owned workspace directory.
type Pipeline struct {
	cfg    config.RenderConfig
	issuer config.Issuer
	log    zerolog.Logger
}

// New builds a pipeline from the renderer settings and the issuer record.
func New(cfg config.RenderConfig, issuer config.Issuer) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		issuer: issuer,
		log:    logger.WithComponent("render"),
	}
}

// Generate renders inv into <OutputDir>/<filename><ext>. It implements
// invoice.Generator. Neither the invoice nor its account is mutated here;
// the invoice number was committed when the invoice was constructed.
func (p *Pipeline) Generate(ctx context.Context, inv *invoice.Invoice) error {
	const op = "Generate"

	if len(inv.Entries()) == 0 {
		return newPipelineError(op, ErrEmptyInvoice, "")
	}

	p.log.Info().
		Str("code", inv.PlainCode()).
		Int("entries", len(inv.Entries())).
		Msg("Generating invoice document")

	if err := p.acquireWorkspace(); err != nil {
		return err
	}
	defer p.releaseWorkspace()

	if err := p.writeFragments(inv); err != nil {
		return err
	}

	if err := p.copyTemplate(); err != nil {
		return err
	}

	if err := p.runRenderer(ctx); err != nil {
		return err
	}

	dest, err := p.collectArtifact(inv)
	if err != nil {
		return err
	}

	p.log.Info().
		Str("code", inv.PlainCode()).
		Str("artifact", dest).
		Msg("Invoice document generated")

	return nil
}

// acquireWorkspace creates the scoped workspace directory. A pre-existing
// directory means a prior run did not clean up; that is fatal rather than
// silently overwritten, so stale fragments cannot end up in a new document.
func (p *Pipeline) acquireWorkspace() error {
	const op = "acquireWorkspace"

	if parent := filepath.Dir(p.cfg.WorkspaceDir); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("%s: creating parent of workspace: %w", op, err)
		}
	}

	if err := os.Mkdir(p.cfg.WorkspaceDir, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			p.log.Error().
				Str("workspace", p.cfg.WorkspaceDir).
				Msg("Workspace already exists; remove it before generating again")
			return newPipelineError(op, ErrWorkspaceConflict, p.cfg.WorkspaceDir)
		}
		return fmt.Errorf("%s: creating workspace: %w", op, err)
	}

	return nil
}

// releaseWorkspace removes the workspace and everything in it. Runs on
// every exit path once the workspace was acquired.
func (p *Pipeline) releaseWorkspace() {
	if err := os.RemoveAll(p.cfg.WorkspaceDir); err != nil {
		p.log.Error().
			Err(err).
			Str("workspace", p.cfg.WorkspaceDir).
			Msg("Failed to remove workspace")
		return
	}
	p.log.Debug().Str("workspace", p.cfg.WorkspaceDir).Msg("Workspace released")
}

// writeFragments writes the four renderer-input fragments the template
// consumes by convention name.
func (p *Pipeline) writeFragments(inv *invoice.Invoice) error {
	const op = "writeFragments"

	fragments := []struct {
		name    string
		content string
	}{
		{fragmentNumberFile, numberFragment(inv)},
		{fragmentCustomerFile, customerFragment(inv)},
		{fragmentInfoFile, infoFragment(inv, p.cfg.MinTableRows)},
		{fragmentConfigFile, configFragment(p.issuer)},
	}

	for _, f := range fragments {
		path := filepath.Join(p.cfg.WorkspaceDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("%s: writing %s: %w", op, f.name, err)
		}
	}

	return nil
}

// copyTemplate places the document template in the workspace under the
// renderer job name.
func (p *Pipeline) copyTemplate() error {
	const op = "copyTemplate"

	data, err := os.ReadFile(p.cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("%s: reading template %s: %w", op, p.cfg.TemplatePath, err)
	}

	dst := filepath.Join(p.cfg.WorkspaceDir, jobName+".tex")
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("%s: writing %s: %w", op, dst, err)
	}

	return nil
}

// runRenderer invokes the external renderer synchronously inside the
// workspace, bounded by the configured timeout. A non-zero exit or a
// timeout surfaces as ErrRenderFailed.
func (p *Pipeline) runRenderer(ctx context.Context) error {
	const op = "runRenderer"

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, p.cfg.Command, jobName)
	cmd.Dir = p.cfg.WorkspaceDir

	p.log.Debug().
		Str("command", p.cfg.Command).
		Str("job", jobName).
		Dur("timeout", p.cfg.Timeout()).
		Msg("Running external renderer")

	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return newPipelineError(op, ErrRenderFailed,
			fmt.Sprintf("%s timed out after %s", p.cfg.Command, p.cfg.Timeout()))
	}
	if err != nil {
		p.log.Error().
			Err(err).
			Str("output", lastLines(string(output), 5)).
			Msg("Renderer exited with an error")
		return newPipelineError(op, ErrRenderFailed, err.Error())
	}

	return nil
}

// collectArtifact copies the rendered output from the workspace to its
// final destination and returns the destination path.
func (p *Pipeline) collectArtifact(inv *invoice.Invoice) (string, error) {
	const op = "collectArtifact"

	src := filepath.Join(p.cfg.WorkspaceDir, jobName+p.cfg.OutputExt)
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", newPipelineError(op, ErrArtifactMissing, src)
		}
		return "", fmt.Errorf("%s: reading %s: %w", op, src, err)
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("%s: creating output dir: %w", op, err)
	}

	dest := filepath.Join(p.cfg.OutputDir, inv.Filename()+p.cfg.OutputExt)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("%s: writing %s: %w", op, dest, err)
	}

	return dest, nil
}

// lastLines trims renderer output to its tail for logging.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
