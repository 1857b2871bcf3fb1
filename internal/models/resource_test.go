package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringDecodesLooseValues(t *testing.T) {
	var paper QuestionPaper
	payload := `{"_id":"1","year":2021,"semester":"3","subject":null,"status":"available","link":true}`

	require.NoError(t, json.Unmarshal([]byte(payload), &paper))

	assert.Equal(t, "1", paper.ResourceID())
	assert.Equal(t, Present("2021"), paper.Field("year"))
	assert.Equal(t, Present("3"), paper.Field("semester"))
	assert.Equal(t, Absent, paper.Field("subject"))
	assert.Equal(t, Absent, paper.Field("course"))
	assert.Equal(t, Present("true"), paper.Field("link"))
	assert.Equal(t, Absent, paper.Field("unknown"))
}

func TestTypedShapesAcceptNumericID(t *testing.T) {
	var question QuestionPaper
	require.NoError(t, json.Unmarshal([]byte(`{"_id":17,"subject":"Maths"}`), &question))
	assert.Equal(t, "17", question.ResourceID())
	assert.Equal(t, Present("Maths"), question.Field("subject"))

	var research ResearchPaper
	require.NoError(t, json.Unmarshal([]byte(`{"_id":4.5,"title":"Graphs"}`), &research))
	assert.Equal(t, "4.5", research.ResourceID())
	assert.Equal(t, Present("Graphs"), research.Field("title"))

	var missing QuestionPaper
	require.NoError(t, json.Unmarshal([]byte(`{"_id":null}`), &missing))
	assert.Equal(t, "", missing.ResourceID())
}

func TestOptionalStringOrDefault(t *testing.T) {
	assert.Equal(t, "N/A", Absent.OrDefault(FallbackText))
	assert.Equal(t, "N/A", Present("").OrDefault(FallbackText))
	assert.Equal(t, "Maths", Present("Maths").OrDefault(FallbackText))
}

func TestOptionalStringMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A OptionalString `json:"a"`
		B OptionalString `json:"b"`
	}{A: Present("x"), B: Absent})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(out))
}

func TestGenericResourceRoundTripsID(t *testing.T) {
	var res GenericResource
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"w-1","colour":"red","weight":12.5}`), &res))

	assert.Equal(t, "w-1", res.ResourceID())
	assert.True(t, res.HasField("colour"))
	assert.False(t, res.HasField("_id"))
	assert.Equal(t, Present("12.5"), res.Field("weight"))
}

func TestResearchPaperFieldSet(t *testing.T) {
	paper := &ResearchPaper{}
	for _, name := range []string{"accessionNumber", "title", "author", "publicationYear", "status", "link"} {
		assert.True(t, paper.HasField(name), name)
	}
	assert.False(t, paper.HasField("course"))
}

func TestFilterStateActive(t *testing.T) {
	assert.False(t, FilterState{"course": "", "status": ""}.Active())
	assert.True(t, FilterState{"course": "bcom"}.Active())
}
