package openrtb2

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/prebid/prebid-content-server/errortypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentMarshal(t *testing.T) {
	testCases := []struct {
		description string
		content     Content
		expected    string
	}{
		{
			description: "fully populated",
			content:     Content{ID: StringPtr("1234567"), Context: ContentContextPtr(ContentContextGame)},
			expected:    `{"id":"1234567","context":2}`,
		},
		{
			description: "fully absent",
			content:     Content{},
			expected:    `{}`,
		},
		{
			description: "only id",
			content:     Content{ID: StringPtr("abc")},
			expected:    `{"id":"abc"}`,
		},
		{
			description: "only context",
			content:     Content{Context: ContentContextPtr(ContentContextUnknown)},
			expected:    `{"context":7}`,
		},
		{
			description: "empty id is present",
			content:     Content{ID: StringPtr("")},
			expected:    `{"id":""}`,
		},
	}

	for _, test := range testCases {
		b, err := json.Marshal(test.content)
		assert.NoError(t, err, test.description)
		assert.Equal(t, test.expected, string(b), test.description)
	}
}

func TestContentMarshalIsDeterministic(t *testing.T) {
	content := Content{ID: StringPtr("x"), Context: ContentContextPtr(ContentContextText)}
	first, err := json.Marshal(content)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(content)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestContentMarshalDoesNotMutate(t *testing.T) {
	id := "abc"
	context := ContentContextMusic
	content := Content{ID: &id, Context: &context}

	_, err := json.Marshal(content)
	require.NoError(t, err)

	assert.Same(t, &id, content.ID)
	assert.Same(t, &context, content.Context)
	assert.Equal(t, "abc", id)
	assert.Equal(t, ContentContextMusic, context)
}

func TestContentMarshalUndefinedContext(t *testing.T) {
	_, err := json.Marshal(Content{Context: ContentContextPtr(ContentContext(42))})
	var failed *errortypes.FailedToMarshal
	assert.True(t, errors.As(err, &failed))
}

func TestContentRoundTrip(t *testing.T) {
	ids := []*string{nil, StringPtr(""), StringPtr("1234567"), StringPtr(`quo"ted <tag> ünïcode`)}
	contexts := []*ContentContext{nil}
	for _, context := range ContentContexts() {
		contexts = append(contexts, ContentContextPtr(context))
	}

	for _, id := range ids {
		for _, context := range contexts {
			original := Content{ID: id, Context: context}

			b, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded Content
			require.NoError(t, json.Unmarshal(b, &decoded), string(b))
			assert.True(t, original.Equal(decoded), string(b))
			assert.Equal(t, original, decoded, string(b))
		}
	}
}

func TestContentWireRoundTrip(t *testing.T) {
	wires := []string{
		`{}`,
		`{"id":"abc"}`,
		`{"context":1}`,
		`{"id":"1234567","context":2}`,
	}

	for _, wire := range wires {
		var content Content
		require.NoError(t, json.Unmarshal([]byte(wire), &content), wire)

		b, err := json.Marshal(content)
		require.NoError(t, err)
		assert.JSONEq(t, wire, string(b))
	}
}

func TestContentUnmarshal(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    Content
	}{
		{
			description: "fully populated",
			input:       `{"id":"1234567","context":2}`,
			expected:    Content{ID: StringPtr("1234567"), Context: ContentContextPtr(ContentContextGame)},
		},
		{
			description: "empty object",
			input:       `{}`,
			expected:    Content{},
		},
		{
			description: "unknown key is ignored",
			input:       `{"id":"x","unknownField":true}`,
			expected:    Content{ID: StringPtr("x")},
		},
		{
			description: "unknown nested key is ignored",
			input:       `{"ext":{"id":5,"context":99},"context":5}`,
			expected:    Content{Context: ContentContextPtr(ContentContextText)},
		},
		{
			description: "null attributes are absent",
			input:       `{"id":null,"context":null}`,
			expected:    Content{},
		},
		{
			description: "escaped id",
			input:       `{"id":"a\"bé"}`,
			expected:    Content{ID: StringPtr(`a"bé`)},
		},
		{
			description: "whitespace",
			input:       " {\n\t\"context\" : 7 \n} ",
			expected:    Content{Context: ContentContextPtr(ContentContextUnknown)},
		},
	}

	for _, test := range testCases {
		var content Content
		assert.NoError(t, json.Unmarshal([]byte(test.input), &content), test.description)
		assert.Equal(t, test.expected, content, test.description)
	}
}

func TestContentUnmarshalEveryCode(t *testing.T) {
	for code := 1; code <= 7; code++ {
		var content Content
		input := []byte(`{"context":` + string(rune('0'+code)) + `}`)
		require.NoError(t, json.Unmarshal(input, &content), string(input))
		require.NotNil(t, content.Context)
		assert.Equal(t, code, content.Context.Code())
	}
}

func TestContentUnmarshalErrors(t *testing.T) {
	testCases := []struct {
		description   string
		input         string
		expectedError error
	}{
		{
			description:   "numeric id",
			input:         `{"id":42}`,
			expectedError: &errortypes.TypeMismatch{Field: "content.id", Expected: "string", Actual: "number"},
		},
		{
			description:   "object id",
			input:         `{"id":{}}`,
			expectedError: &errortypes.TypeMismatch{Field: "content.id", Expected: "string", Actual: "object"},
		},
		{
			description:   "context name instead of code",
			input:         `{"context":"Game"}`,
			expectedError: &errortypes.TypeMismatch{Field: "content.context", Expected: "integer", Actual: "string"},
		},
		{
			description:   "boolean context",
			input:         `{"context":true}`,
			expectedError: &errortypes.TypeMismatch{Field: "content.context", Expected: "integer", Actual: "boolean"},
		},
		{
			description:   "context zero",
			input:         `{"context":0}`,
			expectedError: &errortypes.InvalidEnumCode{Field: "content.context", Value: "0"},
		},
		{
			description:   "context eight",
			input:         `{"context":8}`,
			expectedError: &errortypes.InvalidEnumCode{Field: "content.context", Value: "8"},
		},
		{
			description:   "negative context",
			input:         `{"context":-2}`,
			expectedError: &errortypes.InvalidEnumCode{Field: "content.context", Value: "-2"},
		},
		{
			description:   "fractional context",
			input:         `{"context":1.5}`,
			expectedError: &errortypes.InvalidEnumCode{Field: "content.context", Value: "1.5"},
		},
		{
			description:   "array payload",
			input:         `[{"id":"x"}]`,
			expectedError: &errortypes.TypeMismatch{Field: "content", Expected: "object", Actual: "array"},
		},
		{
			description:   "string payload",
			input:         `"x"`,
			expectedError: &errortypes.TypeMismatch{Field: "content", Expected: "object", Actual: "string"},
		},
	}

	for _, test := range testCases {
		var content Content
		err := json.Unmarshal([]byte(test.input), &content)
		assert.Equal(t, test.expectedError, err, test.description)
		assert.Equal(t, Content{}, content, test.description)
	}
}

func TestContentUnmarshalFailureLeavesTargetUntouched(t *testing.T) {
	content := Content{ID: StringPtr("keep"), Context: ContentContextPtr(ContentContextVideo)}

	err := json.Unmarshal([]byte(`{"id":"replaced","context":8}`), &content)

	var invalid *errortypes.InvalidEnumCode
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "8", invalid.Value)
	assert.Equal(t, "keep", *content.ID)
	assert.Equal(t, ContentContextVideo, *content.Context)
}

func TestContentUnmarshalReplacesPreviousValue(t *testing.T) {
	content := Content{ID: StringPtr("old"), Context: ContentContextPtr(ContentContextVideo)}

	require.NoError(t, json.Unmarshal([]byte(`{"context":3}`), &content))

	assert.Nil(t, content.ID)
	assert.Equal(t, ContentContextMusic, *content.Context)
}

func TestContentUnmarshalEmbedded(t *testing.T) {
	var site struct {
		Page    string   `json:"page"`
		Content *Content `json:"content,omitempty"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"page":"p","content":{"context":4}}`), &site))
	require.NotNil(t, site.Content)
	assert.Equal(t, ContentContextApplication, *site.Content.Context)

	err := json.Unmarshal([]byte(`{"page":"p","content":{"id":1}}`), &site)
	var mismatch *errortypes.TypeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "content.id", mismatch.Field)
}

func TestContentUnmarshalMalformed(t *testing.T) {
	var content Content
	err := content.UnmarshalJSON([]byte(`{"id":"x"`))
	assert.Error(t, err)
	assert.Equal(t, Content{}, content)
}

func TestContentEqual(t *testing.T) {
	assert.True(t, Content{}.Equal(Content{}))
	assert.True(t, Content{ID: StringPtr("a")}.Equal(Content{ID: StringPtr("a")}))
	assert.False(t, Content{ID: StringPtr("a")}.Equal(Content{ID: StringPtr("b")}))
	assert.False(t, Content{ID: StringPtr("")}.Equal(Content{}))
	assert.True(t, Content{Context: ContentContextPtr(ContentContextGame)}.Equal(Content{Context: ContentContextPtr(ContentContextGame)}))
	assert.False(t, Content{Context: ContentContextPtr(ContentContextGame)}.Equal(Content{Context: ContentContextPtr(ContentContextMusic)}))
	assert.False(t, Content{Context: ContentContextPtr(ContentContextGame)}.Equal(Content{}))
}
