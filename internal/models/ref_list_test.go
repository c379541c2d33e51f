package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRefListDecodesLegacyLayouts(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	tests := []struct {
		name string
		raw  interface{}
	}{
		{"documents", bson.A{bson.M{"_id": first}, bson.M{"_id": second.Hex()}}},
		{"bare ids", bson.A{first, second.Hex()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.M{"groceryIds": tt.raw})
			require.NoError(t, err)

			var order Order
			require.NoError(t, bson.Unmarshal(data, &order))
			assert.Equal(t, RefList{first, second}, order.GroceryIDs)
		})
	}
}

func TestRefListRejectsNestedGarbage(t *testing.T) {
	data, err := bson.Marshal(bson.M{"groceryIds": bson.A{bson.M{"_id": bson.M{"_id": "x"}}}})
	require.NoError(t, err)

	var order Order
	assert.Error(t, bson.Unmarshal(data, &order))
}

func TestRefListWritesDocumentLayout(t *testing.T) {
	id := primitive.NewObjectID()
	data, err := bson.Marshal(Category{Name: "Meat", GroceryIDs: RefList{id}})
	require.NoError(t, err)

	var raw struct {
		GroceryIDs []bson.M `bson:"groceryIds"`
	}
	require.NoError(t, bson.Unmarshal(data, &raw))
	require.Len(t, raw.GroceryIDs, 1)
	assert.Equal(t, id, raw.GroceryIDs[0]["_id"])

	body, err := json.Marshal(RefList{id})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"`+id.Hex()+`"}]`, string(body))
}

func TestEmptyRefListMarshalsAsArray(t *testing.T) {
	body, err := json.Marshal(User{})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"orders":[]`)
}

func TestRefListJSONRoundTrip(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	body, err := json.Marshal(Order{GroceryIDs: RefList{first, second, first}})
	require.NoError(t, err)

	var order Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, RefList{first, second, first}, order.GroceryIDs)
}

func TestRefListDecodesJSONLayouts(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name string
		raw  string
		want RefList
	}{
		{"documents", `[{"_id":"` + id.Hex() + `"}]`, RefList{id}},
		{"bare hex", `["` + id.Hex() + `"]`, RefList{id}},
		{"extended json", `[{"$oid":"` + id.Hex() + `"}]`, RefList{id}},
		{"document with extended id", `[{"_id":{"$oid":"` + id.Hex() + `"}}]`, RefList{id}},
		{"empty", `[]`, RefList{}},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RefList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefListRejectsBadJSON(t *testing.T) {
	for _, raw := range []string{`[1]`, `["nope"]`, `[{"id":"x"}]`, `[{"_id":{"_id":"x"}}]`, `{"_id":"x"}`} {
		var got RefList
		assert.Error(t, json.Unmarshal([]byte(raw), &got), raw)
	}
}
