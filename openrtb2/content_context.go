package openrtb2

import (
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/prebid/prebid-content-server/errortypes"
)

// 5.18 Content Context
//
// Various options for indicating the type of content being used or consumed by the user
// in which the impression will appear.
// This OpenRTB list has values derived from the Inventory Quality Guidelines (IQG).
//
// The numeric values are assigned by the OpenRTB specification and are part of the wire format.
// They must never be renumbered.
type ContentContext int8

const (
	ContentContextVideo       ContentContext = 1 // Video (i.e., video file or stream such as Internet TV broadcasts)
	ContentContextGame        ContentContext = 2 // Game (i.e., an interactive software game)
	ContentContextMusic       ContentContext = 3 // Music (i.e., audio file or stream such as Internet radio broadcasts)
	ContentContextApplication ContentContext = 4 // Application (i.e., an interactive software application)
	ContentContextText        ContentContext = 5 // Text (i.e., primarily textual document such as a web page, eBook, or news article)
	ContentContextOther       ContentContext = 6 // Other (i.e., none of the other categories applies)
	ContentContextUnknown     ContentContext = 7 // Unknown
)

var contentContextNames = map[ContentContext]string{
	ContentContextVideo:       "video",
	ContentContextGame:        "game",
	ContentContextMusic:       "music",
	ContentContextApplication: "application",
	ContentContextText:        "text",
	ContentContextOther:       "other",
	ContentContextUnknown:     "unknown",
}

// ContentContexts returns every defined content context, ordered by wire code.
func ContentContexts() []ContentContext {
	return []ContentContext{
		ContentContextVideo,
		ContentContextGame,
		ContentContextMusic,
		ContentContextApplication,
		ContentContextText,
		ContentContextOther,
		ContentContextUnknown,
	}
}

// IsValid reports whether c is one of the codes defined by list 5.18.
func (c ContentContext) IsValid() bool {
	_, ok := contentContextNames[c]
	return ok
}

// Code returns the OpenRTB wire code.
func (c ContentContext) Code() int {
	return int(c)
}

func (c ContentContext) String() string {
	if name, ok := contentContextNames[c]; ok {
		return name
	}
	return "ContentContext(" + strconv.Itoa(int(c)) + ")"
}

// ContentContextFromCode resolves a wire code to its content context.
// Codes outside list 5.18 are rejected rather than mapped to ContentContextOther.
func ContentContextFromCode(code int64) (ContentContext, error) {
	c := ContentContext(code)
	if int64(c) != code || !c.IsValid() {
		return 0, &errortypes.InvalidEnumCode{
			Field: contentFieldContext,
			Value: strconv.FormatInt(code, 10),
		}
	}
	return c, nil
}

// MarshalJSON writes the wire code. Values outside list 5.18 can only be built by an explicit
// conversion and are refused so they never reach a counterparty.
func (c ContentContext) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, &errortypes.FailedToMarshal{
			Message: "content.context: cannot encode undefined content context code " + strconv.Itoa(int(c)),
		}
	}
	return strconv.AppendInt(nil, int64(c), 10), nil
}

// UnmarshalJSON accepts a bare JSON integer in 1..7. A JSON null leaves c unchanged.
func (c *ContentContext) UnmarshalJSON(b []byte) error {
	value, dataType, _, err := jsonparser.Get(b)
	if err != nil {
		return &errortypes.BadInput{Message: "content.context: " + err.Error()}
	}
	if dataType == jsonparser.Null {
		return nil
	}
	parsed, err := parseContentContext(value, dataType)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func parseContentContext(value []byte, dataType jsonparser.ValueType) (ContentContext, error) {
	if dataType != jsonparser.Number {
		return 0, &errortypes.TypeMismatch{
			Field:    contentFieldContext,
			Expected: "integer",
			Actual:   dataType.String(),
		}
	}
	code, err := jsonparser.ParseInt(value)
	if err != nil {
		return 0, &errortypes.InvalidEnumCode{Field: contentFieldContext, Value: string(value)}
	}
	return ContentContextFromCode(code)
}
