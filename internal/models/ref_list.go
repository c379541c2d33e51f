package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefList is a list of document references stored as [{_id: ...}, ...].
type RefList []primitive.ObjectID

type ref struct {
	ID primitive.ObjectID `bson:"_id" json:"_id"`
}

// UnmarshalBSONValue accepts both the [{_id: id}] layout and a bare array of
// ids (ObjectID or hex string), so documents written by older tooling decode.
func (r *RefList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*r = nil
		return nil
	case bsontype.Array:
		values, err := bson.Raw(data).Values()
		if err != nil {
			return err
		}
		out := make(RefList, 0, len(values))
		for _, value := range values {
			id, err := refFromValue(value, true)
			if err != nil {
				return err
			}
			out = append(out, id)
		}
		*r = out
		return nil
	default:
		return fmt.Errorf("cannot decode %s into RefList", t)
	}
}

func refFromValue(value bson.RawValue, allowDocument bool) (primitive.ObjectID, error) {
	switch value.Type {
	case bsontype.ObjectID:
		return value.ObjectID(), nil
	case bsontype.String:
		return primitive.ObjectIDFromHex(strings.TrimSpace(value.StringValue()))
	case bsontype.EmbeddedDocument:
		if !allowDocument {
			break
		}
		inner, err := value.Document().LookupErr("_id")
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("reference without _id: %w", err)
		}
		return refFromValue(inner, false)
	}
	return primitive.NilObjectID, fmt.Errorf("cannot decode %s into reference", value.Type)
}

// MarshalBSONValue always writes the [{_id: id}] layout.
func (r RefList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.refs())
}

func (r RefList) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.refs())
}

// UnmarshalJSON reads what MarshalJSON writes, and also bare arrays of hex
// ids or extended JSON ObjectIDs.
func (r *RefList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*r = nil
		return nil
	}
	out := make(RefList, 0, len(raw))
	for _, item := range raw {
		id, err := refFromJSON(item, true)
		if err != nil {
			return err
		}
		out = append(out, id)
	}
	*r = out
	return nil
}

func refFromJSON(data json.RawMessage, allowDocument bool) (primitive.ObjectID, error) {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		return primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return primitive.NilObjectID, fmt.Errorf("cannot decode %s into reference", string(data))
	}
	if oid, ok := doc["$oid"]; ok {
		return refFromJSON(oid, false)
	}
	inner, ok := doc["_id"]
	if !ok || !allowDocument {
		return primitive.NilObjectID, fmt.Errorf("cannot decode %s into reference", string(data))
	}
	return refFromJSON(inner, false)
}

func (r RefList) refs() []ref {
	out := make([]ref, 0, len(r))
	for _, id := range r {
		out = append(out, ref{ID: id})
	}
	return out
}

// Hex returns the references as hex strings, keeping order and duplicates.
func (r RefList) Hex() []string {
	out := make([]string, 0, len(r))
	for _, id := range r {
		out = append(out, id.Hex())
	}
	return out
}
