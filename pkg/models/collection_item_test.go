package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionItem_IntField(t *testing.T) {
	item := &CollectionItem{Fields: map[string]any{
		"as_int":   3,
		"as_float": float64(2), // JSON numbers decode as float64
		"as_text":  "4",
	}}

	v, ok := item.IntField("as_int")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = item.IntField("as_float")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = item.IntField("as_text")
	assert.False(t, ok)

	_, ok = item.IntField("absent")
	assert.False(t, ok)
}

func TestCollectionItem_StringField(t *testing.T) {
	item := &CollectionItem{Fields: map[string]any{
		"name":  "R. Carver",
		"count": 3,
	}}

	assert.Equal(t, "R. Carver", item.StringField("name"))
	assert.Empty(t, item.StringField("count"))
	assert.Empty(t, item.StringField("absent"))
}

func TestDraft_FieldValue(t *testing.T) {
	draft := NewDraft("d-1")
	draft.BasicInfo.Code = "  MAR-101  "

	value, known := draft.FieldValue("basic_info.code")
	assert.True(t, known)
	assert.Equal(t, "MAR-101", value)

	value, known = draft.FieldValue("enrollment.price")
	assert.True(t, known)
	assert.Empty(t, value)

	_, known = draft.FieldValue("no.such.path")
	assert.False(t, known)
}
