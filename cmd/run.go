package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/chaoskb/internal/config"
	"github.com/marcus/chaoskb/internal/interact"
	"github.com/marcus/chaoskb/internal/output"
	"github.com/marcus/chaoskb/internal/remap"
	"github.com/marcus/chaoskb/internal/scheduler"
	"github.com/marcus/chaoskb/pkg/monitor"
	"github.com/marcus/chaoskb/pkg/monitor/keymap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the chaos demo (default)",
	Long: `Start the chaotic remapper. Every line you type is remapped through the
current mapping, and the mapping is silently reshuffled on a timer.

Prompt commands:
  quit      Exit
  shuffle   Force a reshuffle now
  caps      Toggle the (inverted) caps lock

With --tui the demo runs full-screen:
  ctrl+s    Shuffle now
  ctrl+k    Toggle caps lock
  ctrl+p    Pause/resume the timer
  f1        Toggle help
  ctrl+c    Quit`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChaos(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	cfg.BindRunFlags(runCmd.Flags())
}

// newEngine builds the engine for a run.
var newEngine = remap.NewEngine

// runChaos runs the demo until quit, end of input, or an interrupt.
func runChaos(cmd *cobra.Command, c *config.Config) error {
	out := cmd.OutOrStdout()
	output.SetOutput(out)
	log := slog.Default()
	printer := output.NewPrinter(out, c.SampleSize, c.WarnWithin)

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if err := keymap.ApplyOverrides(km, c.Bindings); err != nil {
		output.Error("%v", err)
		return err
	}

	printer.Banner()

	ok, err := confirmStart(cmd, c)
	if err != nil {
		output.Error("consent prompt: %v", err)
		return fmt.Errorf("consent prompt: %w", err)
	}
	if !ok {
		output.Info("Chaos cancelled. Your keyboard is safe.")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := newEngine()
	gen := remap.NewGenerator(c.Seed, remap.WithProbability(c.Probability))

	tui := c.TUI && isInteractive(cmd)
	if c.TUI && !tui {
		output.Warning("--tui needs a terminal, falling back to the line prompt")
	}

	first := engine.Shuffle(gen)
	log.Info("chaos: started", "keys", first.Len(), "dropped", len(first.Dropped()),
		"interval", c.Interval, "tui", tui)

	var reason interact.Reason
	if tui {
		reason, err = runTUI(ctx, engine, gen, km, c)
	} else {
		reason, err = runPrompt(ctx, cmd, printer, engine, gen, c, first)
	}
	if err != nil {
		log.Debug("chaos: loop ended", "reason", reason, "err", err)
	}
	// The scheduler has already stopped; clear the last remaining flag.
	engine.SetCapsInverted(false)

	if reason == interact.ReasonInterrupted {
		printer.Interrupted()
	}
	printer.Stopped()
	log.Info("chaos: stopped", "reason", reason)
	return nil
}

// runPrompt drives the line-mode demo.
func runPrompt(ctx context.Context, cmd *cobra.Command, printer *output.Printer, engine *remap.Engine,
	gen *remap.Generator, c *config.Config, first *remap.Mapping) (interact.Reason, error) {
	printer.Shuffled(first)
	printer.Markdown(output.Requirements)

	sched := scheduler.New(engine, gen,
		scheduler.WithInterval(c.Interval),
		scheduler.WithTick(c.Tick),
		scheduler.WithTickFunc(printer.Countdown),
		scheduler.WithShuffleFunc(printer.Shuffled),
	)
	if err := sched.Start(ctx); err != nil {
		return interact.ReasonEOF, err
	}
	defer sched.Stop()

	printer.Instructions()
	loop := interact.New(engine, gen, cmd.InOrStdin(), printer, nil)
	return loop.Run(ctx)
}

// runTUI drives the full-screen demo.
func runTUI(ctx context.Context, engine *remap.Engine, gen *remap.Generator, km *keymap.Registry,
	c *config.Config) (interact.Reason, error) {
	sched := scheduler.New(engine, gen,
		scheduler.WithInterval(c.Interval),
		scheduler.WithTick(c.Tick),
	)
	if err := sched.Start(ctx); err != nil {
		return interact.ReasonEOF, err
	}
	defer sched.Stop()

	model := monitor.NewModel(engine, gen, sched, km, c.SampleSize, versionStr)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return tuiExitReason(err)
}

// tuiExitReason maps the bubbletea run error to why the demo ended. An
// interrupt caught by bubbletea's own signal handler and a cancelled
// context both count as an interrupt.
func tuiExitReason(err error) (interact.Reason, error) {
	switch {
	case err == nil:
		return interact.ReasonQuit, nil
	case errors.Is(err, tea.ErrInterrupted), errors.Is(err, tea.ErrProgramKilled):
		return interact.ReasonInterrupted, nil
	}
	return interact.ReasonEOF, fmt.Errorf("error running tui: %w", err)
}

// confirmStart asks before starting unless --yes was given or stdin is not
// a terminal.
func confirmStart(cmd *cobra.Command, c *config.Config) (bool, error) {
	if c.AssumeYes || !isInteractive(cmd) {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Start the chaos?").
			Description("Keys typed into this demo will be remapped and reshuffled without warning.").
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// isInteractive reports whether the command reads from a terminal.
func isInteractive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && output.IsTerminal(f)
}
