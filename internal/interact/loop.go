// Package interact implements the line-oriented prompt: it reads typed lines,
// dispatches the control words and reports how each other line is remapped.
package interact

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/marcus/chaoskb/internal/remap"
)

// Command is what a typed line asks the loop to do.
type Command int

const (
	CmdText Command = iota
	CmdQuit
	CmdShuffle
	CmdCaps
)

func (c Command) String() string {
	switch c {
	case CmdQuit:
		return "quit"
	case CmdShuffle:
		return "shuffle"
	case CmdCaps:
		return "caps"
	}
	return "text"
}

// Parse classifies a line. Control words match the whole line, ignoring case.
func Parse(line string) Command {
	switch strings.ToLower(line) {
	case "quit":
		return CmdQuit
	case "shuffle":
		return CmdShuffle
	case "caps":
		return CmdCaps
	}
	return CmdText
}

// Reason explains why Run returned.
type Reason int

const (
	ReasonQuit Reason = iota
	ReasonEOF
	ReasonInterrupted
)

func (r Reason) String() string {
	switch r {
	case ReasonQuit:
		return "quit"
	case ReasonEOF:
		return "eof"
	case ReasonInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// Reporter receives the outcome of every handled line.
type Reporter interface {
	Prompt()
	Shuffled(m *remap.Mapping)
	CapsToggled(inverted bool)
	Result(res remap.Result)
}

// Loop reads lines from an io.Reader and applies them to an engine.
type Loop struct {
	engine *remap.Engine
	gen    *remap.Generator
	in     io.Reader
	report Reporter
	log    *slog.Logger
}

// New returns a Loop. A nil logger uses slog.Default().
func New(engine *remap.Engine, gen *remap.Generator, in io.Reader, report Reporter, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{engine: engine, gen: gen, in: in, report: report, log: log}
}

// Handle applies one line and reports the outcome. The returned Result is
// only meaningful for CmdText.
func (l *Loop) Handle(line string) (Command, remap.Result) {
	line = strings.TrimSuffix(line, "\r")
	cmd := Parse(line)
	switch cmd {
	case CmdShuffle:
		m := l.engine.Shuffle(l.gen)
		l.log.Info("interact: manual shuffle", "keys", m.Len())
		l.report.Shuffled(m)
	case CmdCaps:
		inverted := l.engine.ToggleCaps()
		l.log.Debug("interact: caps toggled", "inverted", inverted)
		l.report.CapsToggled(inverted)
	case CmdText:
		res := l.engine.TransformLine(line)
		l.report.Result(res)
		return cmd, res
	}
	return cmd, remap.Result{}
}

type lineMsg struct {
	text string
	err  error
}

// Run prompts and handles lines until quit, end of input, or ctx is done.
//
// The read happens on its own goroutine so that cancellation does not wait
// for input; a goroutine blocked on a terminal read is abandoned at exit.
func (l *Loop) Run(ctx context.Context) (Reason, error) {
	lines := make(chan lineMsg)
	next := make(chan struct{})
	go l.read(ctx, lines, next)

	for {
		l.report.Prompt()
		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			return ReasonInterrupted, nil
		}

		select {
		case <-ctx.Done():
			return ReasonInterrupted, nil
		case msg, ok := <-lines:
			if !ok {
				return ReasonEOF, nil
			}
			if msg.err != nil {
				l.log.Debug("interact: read", "err", msg.err)
				return ReasonEOF, msg.err
			}
			if cmd, _ := l.Handle(msg.text); cmd == CmdQuit {
				return ReasonQuit, nil
			}
		}
	}
}

// read delivers one line per request on next so that no input is consumed
// after the loop has stopped asking.
func (l *Loop) read(ctx context.Context, lines chan<- lineMsg, next <-chan struct{}) {
	defer close(lines)

	r := bufio.NewReader(l.in)
	for {
		select {
		case <-ctx.Done():
			return
		case <-next:
		}

		text, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			select {
			case lines <- lineMsg{err: err}:
			case <-ctx.Done():
			}
			return
		}
		if err != nil && text == "" {
			return
		}

		select {
		case lines <- lineMsg{text: strings.TrimSuffix(text, "\n")}:
		case <-ctx.Done():
			return
		}
	}
}
