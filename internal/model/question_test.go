package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Anthya1104/exam-simulator-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionUnmarshalNumeric(t *testing.T) {
	raw := `{"question": "Total loss?", "type": "Numeric", "correct": 12500, "explanation": "sum", "section": "Financial"}`

	var q model.Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))

	assert.True(t, q.IsNumeric())
	assert.Equal(t, "Total loss?", q.Text)
	assert.Equal(t, "Financial", q.Section)
	assert.Equal(t, "12500", q.Correct.String())

	n, ok := q.Correct.Number()
	assert.True(t, ok)
	assert.Equal(t, 12500.0, n)
}

func TestQuestionUnmarshalMultipleChoiceKeepsOptionOrder(t *testing.T) {
	raw := `{"question": "Pick one", "options": {"C": "third", "A": "first", "B": "second"}, "correct": "A"}`

	var q model.Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))

	assert.False(t, q.IsNumeric())
	require.Len(t, q.Options, 3)
	assert.Equal(t, "C", q.Options[0].Label)
	assert.Equal(t, "A", q.Options[1].Label)
	assert.Equal(t, "B", q.Options[2].Label)

	text, ok := q.Options.Text("B")
	assert.True(t, ok)
	assert.Equal(t, "second", text)

	_, ok = q.Options.Text("Z")
	assert.False(t, ok)
	assert.Equal(t, "A", q.Correct.String())
}

func TestOptionsMarshalKeepsOrder(t *testing.T) {
	opts := model.Options{{Label: "B", Text: "second"}, {Label: "A", Text: "first"}}

	out, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.Equal(t, `{"B":"second","A":"first"}`, string(out))

	var back model.Options
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, opts, back)
}

func TestOptionsRejectsArray(t *testing.T) {
	var opts model.Options
	assert.Error(t, json.Unmarshal([]byte(`["A", "B"]`), &opts))
}

func TestQuestionTypeOtherThanNumericIsMultipleChoice(t *testing.T) {
	for _, raw := range []string{`"MCQ"`, `"numeric"`, `42`} {
		var qt model.QuestionType
		require.NoError(t, json.Unmarshal([]byte(raw), &qt))
		assert.Equal(t, model.QuestionTypeMultipleChoice, qt, raw)
	}
}

func TestCorrectValueLiteralIsKept(t *testing.T) {
	var c model.CorrectValue
	require.NoError(t, json.Unmarshal([]byte(`5.0`), &c))
	assert.Equal(t, "5.0", c.String())

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `5.0`, string(out))
}

func TestCorrectValueRejectsObjects(t *testing.T) {
	var c model.CorrectValue
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`true`), &c))
}

func TestCorrectValueNumericLabel(t *testing.T) {
	c := model.LabelValue("12,000")
	n, ok := c.Number()
	assert.True(t, ok)
	assert.Equal(t, 12000.0, n)

	_, ok = model.LabelValue("B").Number()
	assert.False(t, ok)
}

func TestCorrectValueIsZero(t *testing.T) {
	var q model.Question
	require.NoError(t, json.Unmarshal([]byte(`{"question": "no answer"}`), &q))
	assert.True(t, q.Correct.IsZero())

	v, err := model.NumberValue("0")
	require.NoError(t, err)
	assert.False(t, v.IsZero())
}

func TestExamLen(t *testing.T) {
	var e *model.Exam
	assert.Equal(t, 0, e.Len())

	e = &model.Exam{Questions: []model.Question{{ID: 1}, {ID: 2}}}
	assert.Equal(t, 2, e.Len())
}

func TestCorrectValueCanonical(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"integer", `25000`, "25000"},
		{"negative integer", `-20`, "-20"},
		{"negative zero integer", `-0`, "0"},
		{"trailing zero fraction", `2500.50`, "2500.5"},
		{"whole float", `5.0`, "5.0"},
		{"exponent", `1e3`, "1000.0"},
		{"mantissa exponent", `1.0e2`, "100.0"},
		{"small", `0.0001`, "0.0001"},
		{"very small", `0.00001`, "1e-05"},
		{"large", `1e16`, "1e+16"},
		{"below large", `1e15`, "1000000000000000.0"},
		{"label", `"B"`, "B"},
		{"numeric label", `"12,000"`, "12,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c model.CorrectValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c.Canonical())
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "12345.0", model.FormatFloat(12345))
	assert.Equal(t, "-0.0", model.FormatFloat(math.Copysign(0, -1)))
	assert.Equal(t, "1.5e-07", model.FormatFloat(1.5e-7))
	assert.Equal(t, "1.5e+300", model.FormatFloat(1.5e300))
}
