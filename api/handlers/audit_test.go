package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestChangedFields(t *testing.T) {
	diff := changedFields(
		bson.M{"brand": "Volvo", "model": "FH16", "notes": ""},
		bson.M{"brand": "Volvo", "model": "FH17", "notes": "demo unit"},
	)

	assert.NotNil(t, diff)
	previous := diff["previous"].(bson.M)
	current := diff["current"].(bson.M)

	assert.Equal(t, bson.M{"model": "FH16", "notes": ""}, previous)
	assert.Equal(t, bson.M{"model": "FH17", "notes": "demo unit"}, current)
	assert.NotContains(t, current, "brand")
}

func TestChangedFieldsNoChanges(t *testing.T) {
	diff := changedFields(
		bson.M{"brand": "Volvo", "model": "FH16"},
		bson.M{"brand": "Volvo", "model": "FH16"},
	)
	assert.Nil(t, diff)
}
