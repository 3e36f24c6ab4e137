package card

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// Text is rules text. Definitions may give it as a single string or as a
// list of paragraphs; both decode into a slice.
type Text []string

// String joins the paragraphs with newlines.
func (t Text) String() string { return strings.Join(t, "\n") }

// MarshalJSON encodes a single paragraph as a plain string.
func (t Text) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts a string or an array of strings.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("rules text must be a string or a list of strings")
	}
	*t = Text(list)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *Text) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = Text{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = Text(list)
		return nil
	}
	return fmt.Errorf("line %d: rules text must be a string or a list of strings", value.Line)
}

// UnmarshalBSONValue accepts a BSON string or array of strings.
func (t *Text) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bsontype.String:
		*t = Text{rv.StringValue()}
	case bsontype.Array:
		var list []string
		if err := rv.Unmarshal(&list); err != nil {
			return err
		}
		*t = Text(list)
	case bsontype.Null, bsontype.Undefined:
		*t = nil
	default:
		return fmt.Errorf("rules text must be a string or an array, got %s", typ)
	}
	return nil
}
