package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/configloader"
	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/fsutil"
	"github.com/yaklabco/penenv/pkg/workspace"
)

// stdinArg names standard input as a command argument.
const stdinArg = "-"

// errConfig marks failures to load configuration.
var errConfig = errors.New("failed to load configuration")

// session is the resolved state every command works from.
type session struct {
	cfg       *config.Config
	workspace *workspace.Workspace
	logger    *log.Logger

	// loadedFrom lists the config files merged into cfg, lowest precedence first.
	loadedFrom []string
}

// loadSession resolves configuration from files, environment and the
// global flags, then builds the workspace it names.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = color
	}
	if dir, err := cmd.Flags().GetString("dir"); err == nil && dir != "" {
		cliCfg.Workspace = dir
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	ws, err := workspace.New(cfg.Workspace)
	if err != nil {
		return nil, err
	}

	ctx, logger = logging.With(ctx, logging.FieldWorkspace, ws.BaseDir)
	cmd.SetContext(ctx)

	logger.Debug("configuration loaded",
		logging.FieldDebounce, cfg.Debounce,
		logging.FieldColor, cfg.Color,
	)

	return &session{cfg: cfg, workspace: ws, logger: logger, loadedFrom: loadResult.LoadedFrom}, nil
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readNote reads the note named by args: a file path, "-" for stdin, or
// the workspace notes file when args is empty. A missing notes file reads
// as empty; a missing explicit file is an error.
func (s *session) readNote(cmd *cobra.Command, args []string) (string, string, error) {
	ctx := commandContext(cmd)

	if len(args) == 0 {
		path := s.workspace.NotesPath()
		content, _, err := fsutil.ReadFileOrEmpty(ctx, path)
		if err != nil {
			return "", "", fmt.Errorf("read notes: %w", err)
		}
		return path, string(content), nil
	}

	if args[0] == stdinArg {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinArg, string(content), nil
	}

	content, _, err := fsutil.ReadFile(ctx, args[0])
	if err != nil {
		return "", "", fmt.Errorf("read note: %w", err)
	}
	return args[0], string(content), nil
}
