package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlot_PersistsNameOnly(t *testing.T) {
	slot := NewFileSlot("license.pdf", "application/pdf", []byte("%PDF-1.7"))
	require.Equal(t, SlotLoaded, slot.State())

	data, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":null,"preview":null,"name":"license.pdf"}`, string(data))

	var restored FileSlot
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, SlotNameOnly, restored.State())
	assert.Equal(t, "license.pdf", restored.Name)
	assert.Nil(t, restored.Data)
}

func TestFileSlot_Unset(t *testing.T) {
	data, err := json.Marshal(FileSlot{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":null,"preview":null,"name":null}`, string(data))

	var restored FileSlot
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, SlotUnset, restored.State())
}

func TestFileSlot_EmptyFileStillLoaded(t *testing.T) {
	assert.True(t, NewFileSlot("empty.txt", "text/plain", nil).Loaded())
}

func TestOrderStatus_CanTransition(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusProcessing))
	assert.True(t, OrderStatusShipped.CanTransition(OrderStatusDelivered))
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransition(OrderStatusShipped))
}

func TestNotification_Fallbacks(t *testing.T) {
	n := Notification{
		Verb:   VerbNewOrder,
		Actor:  &Ref{Username: "kofi"},
		Target: &Ref{Title: "Order #7"},
	}
	assert.Equal(t, "New order", n.Title())
	assert.Equal(t, "kofi: New order (Order #7)", n.Message())
	assert.Equal(t, "", n.URL())

	n.Data = map[string]interface{}{"message": "Custom", "url": "/orders/7"}
	assert.Equal(t, "Custom", n.Message())
	assert.Equal(t, "/orders/7", n.URL())
}
