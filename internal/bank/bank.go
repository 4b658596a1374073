package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Anthya1104/exam-simulator-cli/internal/config"
	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidBankName = errors.New("invalid question bank name")
	ErrEmptyBank       = errors.New("question bank has no questions")
)

// List returns the names of the question bank files in dir, sorted. A
// missing dir yields no banks.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("Question bank dir %s does not exist", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("read bank dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), config.BankExtension) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates the bank called name inside dir.
func Load(dir, name string) (*model.Exam, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBankName, name)
	}
	if !strings.EqualFold(filepath.Ext(name), config.BankExtension) {
		return nil, fmt.Errorf("%w: %q is not a %s file", ErrInvalidBankName, name, config.BankExtension)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open bank %s: %w", name, err)
	}
	defer f.Close()

	exam, err := Parse(name, f)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Loaded question bank %s (%d questions)", name, exam.Len())
	return exam, nil
}

// Parse decodes a bank from r: a JSON array of questions.
func Parse(name string, r io.Reader) (*model.Exam, error) {
	var questions []model.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", name, err)
	}

	exam := &model.Exam{Name: name, Questions: questions}
	if err := Validate(exam); err != nil {
		return nil, fmt.Errorf("bank %s: %w", name, err)
	}
	return exam, nil
}

// Validate checks the bank and fills in defaults: a missing type means
// multiple-choice and a missing id becomes the 1-based position.
func Validate(exam *model.Exam) error {
	if exam.Len() == 0 {
		return ErrEmptyBank
	}

	for i := range exam.Questions {
		q := &exam.Questions[i]
		if q.ID == 0 {
			q.ID = i + 1
		}
		if q.Type == "" {
			q.Type = model.QuestionTypeMultipleChoice
		}
		if q.Correct.IsZero() {
			return fmt.Errorf("question %d: missing correct value", q.ID)
		}

		if q.IsNumeric() {
			if _, ok := q.Correct.Number(); !ok {
				return fmt.Errorf("question %d: numeric question with non-numeric correct value %q", q.ID, q.Correct)
			}
			continue
		}

		if len(q.Options) == 0 {
			return fmt.Errorf("question %d: multiple-choice question without options", q.ID)
		}
		if _, ok := q.Options.Text(q.Correct.String()); !ok {
			return fmt.Errorf("question %d: correct label %q is not an option", q.ID, q.Correct)
		}
	}
	return nil
}
