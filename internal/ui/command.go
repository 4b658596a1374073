package ui

import (
	"fmt"
	"strings"

	"github.com/Anthya1104/exam-simulator-cli/internal/session"
)

// Command is one parsed line of terminal input.
type Command struct {
	Name string
	Arg  string
}

const (
	cmdBanks = "banks"
	cmdStart = "start"
	cmdHelp  = "help"
	cmdQuit  = "quit"
	cmdShow  = "show"
)

var aliases = map[string]string{
	"a":        "answer",
	"c":        "check",
	"n":        "next",
	"p":        "prev",
	"previous": "prev",
	"f":        "finish",
	"e":        "explain",
	"w":        "work",
	"k":        "key",
	"calc":     "calculator",
	"q":        cmdQuit,
	"exit":     cmdQuit,
	"?":        cmdHelp,
	"s":        cmdShow,
}

// ParseCommand splits a line into a lower-cased command name and the rest
// of the line as its argument.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	if full, ok := aliases[name]; ok {
		name = full
	}
	return Command{Name: name, Arg: strings.TrimSpace(arg)}
}

// Actions turns a session command into the actions it stands for. Index
// is the question the user is looking at. A key argument may hold several
// keys ("12*3=") which become one action each.
func (c Command) Actions(index int) ([]session.Action, error) {
	switch c.Name {
	case "answer":
		if c.Arg == "" {
			return nil, fmt.Errorf("usage: answer <value>")
		}
		return []session.Action{{Kind: session.ActionAnswer, Index: index, Value: c.Arg}}, nil
	case "check":
		return []session.Action{{Kind: session.ActionCheck, Index: index}}, nil
	case "next":
		return []session.Action{{Kind: session.ActionNext}}, nil
	case "prev":
		return []session.Action{{Kind: session.ActionPrevious}}, nil
	case "finish":
		return []session.Action{{Kind: session.ActionFinish}}, nil
	case "explain":
		return []session.Action{{Kind: session.ActionExplain, Index: index}}, nil
	case "work":
		return []session.Action{{Kind: session.ActionWork, Index: index, Value: c.Arg}}, nil
	case "calculator":
		return []session.Action{{Kind: session.ActionToggleCalculator}}, nil
	case "key":
		keys := strings.ReplaceAll(c.Arg, " ", "")
		if keys == "" {
			return nil, fmt.Errorf("usage: key <keys>, e.g. key 12*3=")
		}
		actions := make([]session.Action, 0, len(keys))
		for _, r := range keys {
			actions = append(actions, session.Action{Kind: session.ActionKey, Value: strings.ToUpper(string(r))})
		}
		return actions, nil
	default:
		return nil, fmt.Errorf("unknown command %q, type help", c.Name)
	}
}
