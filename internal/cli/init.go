package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/configloader"
	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/fsutil"
	"github.com/yaklabco/penenv/pkg/workspace"
)

// defaultConfigFile is the config file created by init.
const defaultConfigFile = ".penenv.yml"

// sessionFilePermissions is the file mode for seeded workspace files.
const sessionFilePermissions = 0o600

// targetsHeader seeds a new targets.txt.
const targetsHeader = "# One target per line: host, IP, CIDR or URL. Lines starting with # are ignored.\n"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a session workspace",
		Long: `Create a session workspace: the directory, an empty notes.md, a
targets.txt with a comment header, and a .penenv.yml configuration file
with the defaults.

Existing notes and targets are never touched. An existing configuration
file is only replaced with --force or after confirmation on a terminal.

Examples:
  penenv init                       Set up the current directory
  penenv init ~/engagements/acme    Set up a new engagement directory
  penenv init --output custom.yml   Write the config to a custom path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Config file path (default: .penenv.yml in the workspace)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else if flagDir, err := cmd.Flags().GetString("dir"); err == nil && flagDir != "" {
		dir = flagDir
	}

	ws, err := workspace.New(dir)
	if err != nil {
		return err
	}
	if err := ws.Ensure(ctx); err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ws.Path(defaultConfigFile)
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	writeConfig := true
	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		writeConfig, err = confirm(cmd, fmt.Sprintf("%s exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
	} else if err == nil {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if writeConfig {
		// The workspace is recorded only when it differs from the config location.
		cfg := config.NewConfig()
		if filepath.Dir(absPath) != ws.BaseDir {
			cfg.Workspace = ws.BaseDir
		}
		if err := configloader.WriteConfig(ctx, cfg, absPath); err != nil {
			return err
		}
		logger.Info("created configuration file", logging.FieldPath, outputPath)
	}

	seeds := []struct {
		path    string
		content string
	}{
		{ws.NotesPath(), ""},
		{ws.TargetsPath(), targetsHeader},
	}
	for _, seed := range seeds {
		created, err := createIfMissing(cmd, seed.path, seed.content)
		if err != nil {
			return err
		}
		if created {
			logger.Info("created", logging.FieldPath, seed.path)
		}
	}

	logger.Info("workspace ready", logging.FieldWorkspace, ws.BaseDir)
	logger.Info("run 'eval \"$(penenv hook)\"' in bash to log commands")

	return nil
}

// createIfMissing writes content to path unless the file exists.
func createIfMissing(cmd *cobra.Command, path, content string) (bool, error) {
	_, info, err := fsutil.ReadFileOrEmpty(commandContext(cmd), path)
	if err != nil {
		return false, err
	}
	if info != nil {
		return false, nil
	}
	if err := fsutil.WriteAtomic(commandContext(cmd), path, []byte(content), sessionFilePermissions); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// confirm asks a yes/no question on the command's streams.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
