package openrtb2

import (
	"github.com/buger/jsonparser"
	"github.com/prebid/prebid-content-server/errortypes"
)

const (
	contentObject       = "content"
	contentFieldID      = contentObject + ".id"
	contentFieldContext = contentObject + ".context"
)

// 3.2.16 Object: Content
//
// This object describes the content in which the impression will appear, which may be syndicated or non-syndicated content.
// This object may be useful when syndicated content contains impressions and does not necessarily match the publisher’s general content.
// The exchange might or might not have knowledge of the page where the content is running, as a result of the syndication method.
// For example might be a video impression embedded in an iframe on an unknown web property or device.
//
// Both attributes are optional. A nil pointer means the attribute is absent and is never written to the wire.
type Content struct {

	// Attribute:
	//   id
	// Type:
	//   string
	// Description:
	//   ID uniquely identifying the content.
	ID *string `json:"id,omitempty"`

	// Attribute:
	//   context
	// Type:
	//   integer
	// Description:
	//   Type of content (game, video, text, etc.). Refer to List 5.18.
	Context *ContentContext `json:"context,omitempty"`
}

// Equal compares the attribute values, treating two absent attributes as equal.
func (c Content) Equal(other Content) bool {
	if (c.ID == nil) != (other.ID == nil) || (c.ID != nil && *c.ID != *other.ID) {
		return false
	}
	if (c.Context == nil) != (other.Context == nil) || (c.Context != nil && *c.Context != *other.Context) {
		return false
	}
	return true
}

// UnmarshalJSON decodes a content object. Unrecognised keys are ignored and a JSON null
// for either attribute leaves it absent. On any error c is left unchanged.
func (c *Content) UnmarshalJSON(b []byte) error {
	_, dataType, _, err := jsonparser.Get(b)
	if err != nil {
		return &errortypes.BadInput{Message: contentObject + ": " + err.Error()}
	}
	switch dataType {
	case jsonparser.Null:
		return nil
	case jsonparser.Object:
	default:
		return &errortypes.TypeMismatch{
			Field:    contentObject,
			Expected: "object",
			Actual:   dataType.String(),
		}
	}

	var decoded Content
	err = jsonparser.ObjectEach(b, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType == jsonparser.Null {
			return nil
		}
		switch string(key) {
		case "id":
			if dataType != jsonparser.String {
				return &errortypes.TypeMismatch{
					Field:    contentFieldID,
					Expected: "string",
					Actual:   dataType.String(),
				}
			}
			id, err := jsonparser.ParseString(value)
			if err != nil {
				return &errortypes.BadInput{Message: contentFieldID + ": " + err.Error()}
			}
			decoded.ID = &id
		case "context":
			context, err := parseContentContext(value, dataType)
			if err != nil {
				return err
			}
			decoded.Context = &context
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(errortypes.Coder); !ok {
			err = &errortypes.BadInput{Message: contentObject + ": " + err.Error()}
		}
		return err
	}

	*c = decoded
	return nil
}
