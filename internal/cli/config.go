package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/penenv/internal/configloader"
	"github.com/yaklabco/penenv/internal/ui/pretty"
	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/fsutil"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect penenv configuration",
		Long: `Inspect how penenv resolves its configuration.

Configuration is merged from, lowest precedence first: built-in defaults,
the system file, the user file, the nearest project .penenv.yml, the file
given with --config, PENENV_* environment variables and command-line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathsCommand())
	cmd.AddCommand(newConfigEnvCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(cmd, nil)
			if err != nil {
				return err
			}

			var header strings.Builder
			header.WriteString("# Effective penenv configuration\n")
			if len(sess.loadedFrom) == 0 {
				header.WriteString("# sources: defaults only\n")
			}
			for _, path := range sess.loadedFrom {
				fmt.Fprintf(&header, "# source: %s\n", path)
			}
			fmt.Fprintf(&header, "# format: %s, color: %s", sess.cfg.Format, sess.cfg.Color)

			content, err := sess.cfg.ToYAMLWithHeader(header.String())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where configuration files are looked up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			paths, err := configloader.DiscoverPaths(commandContext(cmd), workDir)
			if err != nil {
				return fmt.Errorf("discover paths: %w", err)
			}
			if explicit, err := cmd.Flags().GetString("config"); err == nil {
				paths.Explicit = explicit
			}

			out := cmd.OutOrStdout()
			styles := flagStyles(cmd)
			userDir := configloader.UserConfigDir()
			rows := []struct{ name, path, hint string }{
				{"system", paths.System, "/etc/penenv/config.yaml"},
				{"user", paths.User, userDir},
				{"project", paths.Project, ".penenv.yml (searched upward)"},
				{"explicit", paths.Explicit, "--config"},
			}
			for _, row := range rows {
				value := styles.FilePath.Render(row.path)
				if row.path == "" {
					value = styles.Dim.Render("not found: " + row.hint)
				}
				fmt.Fprintf(out, "%-9s %s\n", row.name, value)
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := flagStyles(cmd)
			descriptions := configloader.ListEnvVars()

			for _, name := range configloader.EnvVarNames() {
				line := styles.Bold.Render(fmt.Sprintf("%-18s", name)) + " " + descriptions[name]
				if value, ok := os.LookupEnv(name); ok {
					line += styles.Dim.Render(fmt.Sprintf(" (set: %q)", value))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			content, _, err := fsutil.ReadFile(commandContext(cmd), path)
			if err != nil {
				return err
			}

			cfg, err := config.FromYAML(content)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", errConfig, path, err)
			}

			out := cmd.OutOrStdout()
			styles := flagStyles(cmd)
			result := configloader.ValidateWithFile(cfg, path)
			for _, message := range result.AllMessages() {
				style := styles.Warning
				if strings.HasPrefix(message, "error:") {
					style = styles.Error
				}
				fmt.Fprintln(out, style.Render(message))
			}

			if !result.Valid() {
				return &result.Errors[0]
			}
			fmt.Fprintln(out, styles.Success.Render(path+" is valid"))
			return nil
		},
	}
}

// flagStyles builds output styles from the --color flag alone, for
// commands that run without a resolved configuration.
func flagStyles(cmd *cobra.Command) *pretty.Styles {
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout()))
}
