package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/logging"
	"github.com/yaklabco/penenv/pkg/export"
	"github.com/yaklabco/penenv/pkg/fsutil"
)

// exportFilePermissions is the file mode for exported HTML.
const exportFilePermissions = 0o644

// exportFlags holds the flags for the export command.
type exportFlags struct {
	output     string
	standalone bool
	title      string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Export a note to HTML",
		Long: `Convert a note to HTML.

With no argument the workspace notes.md is exported; "-" reads standard
input. Output goes to standard output unless --output is given. The
markdown flavor, hard wraps and raw HTML handling come from the export
section of the configuration.

Examples:
  penenv export -o report.html --standalone --title "ACME internal"
  cat loot.md | penenv export -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "emit a complete HTML page")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title for --standalone (default: front matter title)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, flags *exportFlags) error {
	ctx := commandContext(cmd)

	sess, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}

	path, text, err := sess.readNote(cmd, args)
	if err != nil {
		return err
	}

	exportCfg := sess.cfg.Export
	content, err := export.HTML(ctx, []byte(text), export.Options{
		Flavor:     string(exportCfg.Flavor),
		HardWraps:  exportCfg.HardWrapsEnabled(),
		Unsafe:     exportCfg.Unsafe,
		Standalone: flags.standalone,
		Title:      flags.title,
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, content, exportFilePermissions)
	if err != nil {
		return err
	}

	sess.logger.Info("exported note",
		logging.FieldInput, path,
		logging.FieldOutput, flags.output,
		logging.FieldFlavor, exportCfg.Flavor,
		logging.FieldBytes, len(content),
	)
	if !changed {
		sess.logger.Debug("export unchanged", logging.FieldOutput, flags.output)
	}
	return nil
}
