package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueIsNull(t *testing.T) {
	assert.True(t, AnswerValue{}.IsNull())
	assert.True(t, AnswerValue{Raw: json.RawMessage(`null`)}.IsNull())
	assert.True(t, AnswerValue{Raw: json.RawMessage(` null `)}.IsNull())
	assert.False(t, AnswerValue{Raw: json.RawMessage(`""`)}.IsNull())
	assert.False(t, AnswerValue{Raw: json.RawMessage(`0`)}.IsNull())
}

func TestAnswerValueAsString(t *testing.T) {
	assert.Equal(t, "B", StringAnswer("B").AsString())
	assert.Equal(t, "A", ListAnswer("A", "C").AsString(), "数组取第一个元素")
	assert.Equal(t, "", ListAnswer().AsString())
	assert.Equal(t, "true", AnswerValue{Raw: json.RawMessage(`true`)}.AsString())
	assert.Equal(t, "false", AnswerValue{Raw: json.RawMessage(`false`)}.AsString())
	assert.Equal(t, "3.14", AnswerValue{Raw: json.RawMessage(`3.14`)}.AsString())
	assert.Equal(t, "42", AnswerValue{Raw: json.RawMessage(`42`)}.AsString())
}

func TestAnswerValueAsStringNestedList(t *testing.T) {
	v := AnswerValue{Raw: json.RawMessage(`[["X", "Y"], "Z"]`)}
	assert.Equal(t, "X", v.AsString())
}

func TestAnswerValueAsList(t *testing.T) {
	assert.Equal(t, []string{"A", "C"}, ListAnswer("A", "C").AsList())
	assert.Equal(t, []string{"B"}, StringAnswer("B").AsList(), "标量包装成单元素列表")
	assert.Nil(t, AnswerValue{Raw: json.RawMessage(`null`)}.AsList())

	mixed := AnswerValue{Raw: json.RawMessage(`["A", 2, true]`)}
	assert.Equal(t, []string{"A", "2", "true"}, mixed.AsList())
}

func TestAnswerValueAsFloat(t *testing.T) {
	got, err := AnswerValue{Raw: json.RawMessage(`3.14`)}.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 3.14, got)

	got, err = StringAnswer(" 42 ").AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)

	_, err = StringAnswer("not a number").AsFloat()
	assert.Error(t, err)
}

func TestAnswerValueJSONRoundTrip(t *testing.T) {
	var parsed map[uint]AnswerValue
	payload := []byte(`{"1": "B", "2": ["A", "C"], "3": 42}`)
	require.NoError(t, json.Unmarshal(payload, &parsed))

	assert.Equal(t, "B", parsed[1].AsString())
	assert.Equal(t, []string{"A", "C"}, parsed[2].AsList())
	assert.Equal(t, "42", parsed[3].AsString())

	out, err := json.Marshal(parsed[2])
	require.NoError(t, err)
	assert.JSONEq(t, `["A", "C"]`, string(out))
}

func TestQuestionSanitize(t *testing.T) {
	q := Question{
		Text:          "What is X?",
		CorrectAnswer: json.RawMessage(`["A"]`),
		Explanation:   "because",
	}

	q.Sanitize()

	assert.Nil(t, q.CorrectAnswer)
	assert.Empty(t, q.Explanation)
	assert.Equal(t, "What is X?", q.Text)
}
