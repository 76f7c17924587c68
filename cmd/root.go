package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marcus/chaoskb/internal/config"
)

var (
	versionStr string
	cfg        = config.Default()
)

// SetVersion sets the version string
func SetVersion(v string) {
	versionStr = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "chaoskb",
	Short: "Chaotic keyboard remapper simulation",
	Long: `chaoskb - A terminal simulation of a chaotic keyboard remapper.

Keys are randomly remapped and silently reshuffled on a timer while you type.
Nothing outside this terminal is intercepted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		setupLogging(cmd, cfg)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChaos(cmd, cfg)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the default slog logger. Records go to stderr so
// they never interleave with the prompt on stdout.
func setupLogging(cmd *cobra.Command, c *config.Config) {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	slog.SetDefault(slog.New(handler).With("run", uuid.NewString()))
}

// commandLabel is the help-listing name of a command, aliases included.
func commandLabel(c *cobra.Command) string {
	return strings.Join(append([]string{c.Name()}, c.Aliases...), ", ")
}

// usageTemplate lists subcommands under their group titles, each with its
// aliases, and skips cobra's separate Aliases section.
const usageTemplate = `Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{range $g := .Groups}}

{{$g.Title}}{{range $cmds}}{{if and (eq .GroupID $g.ID) (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad (commandLabel .) 24}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for details on a command.{{end}}
`

func init() {
	cobra.AddTemplateFunc("commandLabel", commandLabel)
	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.SetVersionTemplate("chaoskb version {{.Version}}\n")

	// Define command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)

	// Assign built-in commands to system group
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")

	cfg.BindLogFlags(rootCmd.PersistentFlags())
	cfg.BindRunFlags(rootCmd.Flags())
}
