package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Anthya1104/exam-simulator-cli/internal/bank"
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/Anthya1104/exam-simulator-cli/internal/session"
	"github.com/sirupsen/logrus"
)

// Terminal drives a session from line-based input, redrawing after every
// command.
type Terminal struct {
	ctrl    *session.Controller
	dataDir string
	in      io.Reader
	out     io.Writer
}

func NewTerminal(ctrl *session.Controller, dataDir string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		ctrl:    ctrl,
		dataDir: dataDir,
		in:      in,
		out:     out,
	}
}

// Start loads a bank by file name or by its number in the bank list and
// begins an exam on it. A bank that cannot be loaded leaves the current
// session untouched.
func (t *Terminal) Start(ref string) error {
	name, err := t.resolveBank(ref)
	if err != nil {
		return err
	}

	exam, err := bank.Load(t.dataDir, name)
	if err != nil {
		logrus.Warnf("Could not load question bank %s: %v", name, err)
		return err
	}
	return t.ctrl.Dispatch(session.Action{Kind: session.ActionStart, Exam: exam})
}

func (t *Terminal) resolveBank(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("usage: start <name|number>")
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref, nil
	}

	names, err := bank.List(t.dataDir)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(names) {
		return "", fmt.Errorf("no question bank number %d", n)
	}
	return names[n-1], nil
}

// Handle runs one input line and redraws. It reports whether the user
// asked to quit.
func (t *Terminal) Handle(line string) bool {
	cmd := ParseCommand(line)

	switch cmd.Name {
	case "":
		return false
	case cmdQuit:
		return true
	case cmdHelp:
		_, _ = io.WriteString(t.out, helpText)
		return false
	case cmdBanks:
		names, err := bank.List(t.dataDir)
		if err != nil {
			t.warn(err)
			return false
		}
		RenderBanks(t.out, names)
		return false
	case cmdStart:
		if err := t.Start(cmd.Arg); err != nil {
			t.warn(err)
			return false
		}
	case cmdShow:
	default:
		actions, err := cmd.Actions(t.ctrl.CurrentIndex())
		if err != nil {
			t.warn(err)
			return false
		}
		// choosing an option is checked straight away
		if cmd.Name == "answer" && t.currentIsChoice() {
			actions = append(actions, session.Action{Kind: session.ActionCheck, Index: t.ctrl.CurrentIndex()})
		}
		for _, a := range actions {
			if err := t.ctrl.Dispatch(a); err != nil {
				if !errors.Is(err, session.ErrInvalidNumber) {
					t.warn(err)
				}
				break
			}
		}
	}

	Render(t.out, t.ctrl.View())
	return false
}

func (t *Terminal) currentIsChoice() bool {
	exam := t.ctrl.Exam()
	if exam == nil || t.ctrl.Status() != session.StatusInProgress {
		return false
	}
	return exam.Questions[t.ctrl.CurrentIndex()].Type != model.QuestionTypeNumeric
}

func (t *Terminal) warn(err error) {
	logrus.Debugf("terminal: %v", err)
	fmt.Fprintf(t.out, "! %v\n", err)
}

// Run reads commands until quit, end of input or ctx cancellation.
func (t *Terminal) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	Render(t.out, t.ctrl.View())
	t.prompt()

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("Terminal session interrupted.")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if t.Handle(line) {
				return nil
			}
			t.prompt()
		}
	}
}

func (t *Terminal) prompt() {
	_, _ = io.WriteString(t.out, "> ")
}
