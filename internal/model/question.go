package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// QuestionType tells how a submitted answer is checked.
type QuestionType string

const (
	QuestionTypeNumeric        QuestionType = "Numeric"
	QuestionTypeMultipleChoice QuestionType = "MultipleChoice"
)

// UnmarshalJSON maps anything other than "Numeric" to multiple-choice.
func (t *QuestionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// non-string types are treated like an absent field
		*t = QuestionTypeMultipleChoice
		return nil
	}
	if s == string(QuestionTypeNumeric) {
		*t = QuestionTypeNumeric
		return nil
	}
	*t = QuestionTypeMultipleChoice
	return nil
}

// Option is one labelled choice of a multiple-choice question.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Options keeps the choices in the order they appear in the bank file.
type Options []Option

// Text returns the choice text for label.
func (o Options) Text(label string) (string, bool) {
	for _, opt := range o {
		if opt.Label == label {
			return opt.Text, true
		}
	}
	return "", false
}

// MarshalJSON writes the options back as a label->text object in order.
func (o Options) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a label->text object while preserving key order.
func (o *Options) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options: expected an object, got %v", tok)
	}

	var opts Options
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("options: %w", err)
		}
		label, _ := keyTok.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("options: value for %q: %w", label, err)
		}
		opts = append(opts, Option{Label: label, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	*o = opts
	return nil
}

// CorrectValue is the "correct" field of a question: a number for numeric
// questions, an option label otherwise. The literal text is kept so that
// scoring compares against exactly what the bank file says.
type CorrectValue struct {
	literal  string
	number   float64
	isNumber bool
}

// NumberValue builds a numeric correct value from its literal text.
func NumberValue(literal string) (CorrectValue, error) {
	literal = strings.TrimSpace(literal)
	n, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return CorrectValue{}, fmt.Errorf("invalid number %q: %w", literal, err)
	}
	return CorrectValue{literal: literal, number: n, isNumber: true}, nil
}

// LabelValue builds a label correct value.
func LabelValue(label string) CorrectValue {
	return CorrectValue{literal: label}
}

func (c *CorrectValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = CorrectValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("correct: %w", err)
		}
		*c = LabelValue(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := NumberValue(string(data))
		if err != nil {
			return fmt.Errorf("correct: %w", err)
		}
		*c = v
		return nil
	default:
		return fmt.Errorf("correct: must be a number or a string, got %s", data)
	}
}

func (c CorrectValue) MarshalJSON() ([]byte, error) {
	if c.isNumber {
		return []byte(c.literal), nil
	}
	return json.Marshal(c.literal)
}

// IsZero reports whether the field was absent from the bank file.
func (c CorrectValue) IsZero() bool {
	return !c.isNumber && c.literal == ""
}

// Number returns the numeric value. Label values holding a number
// (for example "12,000") are parsed too.
func (c CorrectValue) Number() (float64, bool) {
	if c.isNumber {
		return c.number, true
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(c.literal), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the literal as written in the bank file.
func (c CorrectValue) String() string {
	return c.literal
}

// Canonical is the text an answer has to match to score. Labels are kept
// as written. Integer literals render without a decimal point ("25000");
// any other number renders in its shortest round-trip form, which always
// shows a fraction or an exponent ("2500.50" -> "2500.5", "1e3" -> "1000.0",
// "1e16" -> "1e+16").
func (c CorrectValue) Canonical() string {
	if !c.isNumber {
		return c.literal
	}
	if !strings.ContainsAny(c.literal, ".eE") {
		if n, err := strconv.ParseInt(c.literal, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return c.literal
	}
	return FormatFloat(c.number)
}

// FormatFloat renders v in shortest round-trip form. Exponents below -4 or
// from 16 up switch to scientific notation; fixed notation always keeps at
// least one fractional digit.
func FormatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

// Question structure
type Question struct {
	ID          int          `json:"id"`
	Section     string       `json:"section"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"question"`
	Options     Options      `json:"options"`
	Correct     CorrectValue `json:"correct"`
	Explanation string       `json:"explanation"`
}

func (q Question) IsNumeric() bool {
	return q.Type == QuestionTypeNumeric
}

func (q Question) String() string {
	return fmt.Sprintf("Q%d: %s", q.ID, q.Text)
}

// Exam is an ordered, fixed-length list of questions loaded from one bank.
type Exam struct {
	Name      string
	Questions []Question
}

func (e *Exam) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Questions)
}
