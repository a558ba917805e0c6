package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame_Snapshot(t *testing.T) {
	f, err := DecodeFrame([]byte(`{"type":"init_data","notifications":[{"id":1,"verb":"new_order","is_read":false}],"unread_count":1}`))
	require.NoError(t, err)

	assert.True(t, f.IsSnapshot())
	require.Len(t, f.Notifications, 1)
	assert.Equal(t, int64(1), f.Notifications[0].ID)
	require.NotNil(t, f.UnreadCount)
	assert.Equal(t, 1, *f.UnreadCount)
}

func TestDecodeFrame_RefreshListWithoutCount(t *testing.T) {
	f, err := DecodeFrame([]byte(`{"type":"refresh_list","notifications":null}`))
	require.NoError(t, err)

	assert.Equal(t, FrameRefreshList, f.Type)
	assert.NotNil(t, f.Notifications)
	assert.Empty(t, f.Notifications)
	assert.Nil(t, f.UnreadCount)
}

func TestDecodeFrame_CounterAliases(t *testing.T) {
	for _, raw := range []string{
		`{"type":"unread_count","count":4}`,
		`{"type":"count_updated","count":4}`,
		`{"type":"unread_count","unread_count":4}`,
	} {
		f, err := DecodeFrame([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, FrameUnreadCount, f.Type, raw)
		assert.Equal(t, 4, f.Count, raw)
	}

	f, err := DecodeFrame([]byte(`{"type":"count_updated","count":2,"trigger_toast":true}`))
	require.NoError(t, err)
	assert.True(t, f.TriggerToast)
}

func TestDecodeFrame_Rejects(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"type":"typing"}`))
	assert.True(t, errors.Is(err, ErrUnknownFrame))

	_, err = DecodeFrame([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeFrame([]byte(`{"type":"unread_count"}`))
	assert.Error(t, err)

	_, err = DecodeFrame([]byte(`{"type":"notification"}`))
	assert.Error(t, err)
}

func TestAction_Wire(t *testing.T) {
	data, err := json.Marshal(MarkAllRead())
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"mark_all_read"}`, string(data))

	data, err = json.Marshal(ViewDetail(9))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"view_detail","id":9}`, string(data))

	for _, a := range []Action{MarkRead(0), Delete(0), ViewDetail(0)} {
		data, err = json.Marshal(a)
		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"`+string(a.Action)+`","id":0}`, string(data))
	}
}
