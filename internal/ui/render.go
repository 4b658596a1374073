package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Anthya1104/exam-simulator-cli/internal/calc"
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/Anthya1104/exam-simulator-cli/internal/session"
)

const helpText = `Commands:
  banks                 list question banks
  start <name|number>   start an exam from a bank
  answer <value>  (a)   answer the current question (label or number)
  check           (c)   check the current answer
  next / prev     (n/p) move between questions
  finish          (f)   finish the exam from the last question
  explain         (e)   show or hide the explanation
  work <text>     (w)   keep calculation notes for this question
  calc                  show or hide the calculator
  key <keys>      (k)   press calculator keys, e.g. key 12*3=  (C clears)
  show            (s)   redraw the screen
  quit            (q)   leave
`

// Render writes the whole screen for v.
func Render(w io.Writer, v session.View) {
	var b strings.Builder

	if v.Item == nil {
		b.WriteString("No exam loaded. Type 'banks' to list question banks, 'start <name>' to begin.\n")
		_, _ = io.WriteString(w, b.String())
		return
	}

	fmt.Fprintf(&b, "\n=== %s | Time Left %s", v.Bank, v.TimeLeft)
	if v.Expired {
		b.WriteString(" (time is up)")
	}
	b.WriteString(" ===\n")

	fmt.Fprintf(&b, "Question %d / %d", v.Index+1, v.Total)
	if v.Item.Section != "" {
		fmt.Fprintf(&b, " • %s", v.Item.Section)
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", v.Item.Text)

	if v.Item.Type == model.QuestionTypeNumeric {
		fmt.Fprintf(&b, "Your answer (numbers only): %s\n", v.Answer)
	} else {
		for _, opt := range v.Item.Options {
			mark := " "
			if opt.Label == v.Answer {
				mark = "*"
			}
			fmt.Fprintf(&b, " %s %s. %s\n", mark, opt.Label, opt.Text)
		}
	}

	if v.Check != nil {
		fmt.Fprintf(&b, "\n%s\n", v.Check.Feedback)
	}

	if v.Revealed {
		b.WriteString("\n--- Explanation ---\n")
		if v.Work != "" {
			fmt.Fprintf(&b, "Your calculations: %s\n", v.Work)
		}
		fmt.Fprintf(&b, "%s\n", v.Explanation)
	}

	if v.CalculatorVisible {
		renderCalculator(&b, v.CalculatorDisplay)
	}

	if v.Score != nil {
		fmt.Fprintf(&b, "\nExam finished! Score: %d/%d\n", v.Score.Correct, v.Score.Total)
	} else if v.IsLast {
		b.WriteString("\n[prev] [finish]\n")
	} else {
		b.WriteString("\n[prev] [next →]\n")
	}

	_, _ = io.WriteString(w, b.String())
}

func renderCalculator(b *strings.Builder, display string) {
	b.WriteString("\n--- Calculator ---\n")
	fmt.Fprintf(b, "Result: %s\n", display)
	for i, k := range calc.Keypad {
		fmt.Fprintf(b, "[%s]", k)
		if i%4 == 3 {
			b.WriteString("\n")
		}
	}
	if len(calc.Keypad)%4 != 0 {
		b.WriteString("\n")
	}
}

// RenderBanks lists bank names with their 1-based numbers.
func RenderBanks(w io.Writer, names []string) {
	if len(names) == 0 {
		_, _ = io.WriteString(w, "No JSON file in the question bank folder.\n")
		return
	}
	var b strings.Builder
	b.WriteString("Question banks:\n")
	for i, n := range names {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, n)
	}
	_, _ = io.WriteString(w, b.String())
}
