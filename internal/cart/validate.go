// Package cart validates checkout and saved-cart bodies and stores carts.
package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"grocerystore/internal/response"
)

const (
	OrderField = "order"
	CartField  = "cart"
)

// ValidateRequest checks that body is {field: [{"_id": <truthy>}, ...]} and
// returns the ids in order. Only the shape is checked; whether the ids exist
// is decided by the caller.
func ValidateRequest(body []byte, field string) ([]string, error) {
	shapeErr := response.Errorf(response.InputError,
		"Required format for request body: { '%s': [{'_id': '123a4bc'}, ...] }", field)

	var root interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, shapeErr
		}
		return nil, response.FromDecode(err)
	}
	object, ok := root.(map[string]interface{})
	if !ok {
		return nil, shapeErr
	}
	list, ok := object[field].([]interface{})
	if !ok {
		return nil, shapeErr
	}

	ids := make([]string, 0, len(list))
	for _, element := range list {
		item, ok := element.(map[string]interface{})
		if !ok {
			return nil, shapeErr
		}
		id, ok := item["_id"]
		if !ok || !truthy(id) {
			return nil, shapeErr
		}
		ids = append(ids, idString(id))
	}
	return ids, nil
}

func ValidateOrderRequest(body []byte) ([]string, error) {
	return ValidateRequest(body, OrderField)
}

func ValidateCartRequest(body []byte) ([]string, error) {
	return ValidateRequest(body, CartField)
}

// truthy rejects null, false, 0 and "" the way a loose boolean check would.
func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	default:
		return true
	}
}

func idString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	}
}
