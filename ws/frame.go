package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"negromart_seller/internal/models"
)

type FrameType string

const (
	FrameInitData     FrameType = "init_data"
	FrameRefreshList  FrameType = "refresh_list"
	FrameNotification FrameType = "notification"
	FrameUnreadCount  FrameType = "unread_count"

	// count_updated is the same message as unread_count under another name;
	// some server builds still emit it.
	frameCountUpdated = "count_updated"
)

var ErrUnknownFrame = errors.New("ws: unknown frame type")

// Frame is one server push. Which fields are set depends on Type:
//
//	init_data, refresh_list  Notifications (+ UnreadCount, optional on refresh_list)
//	notification             Notification
//	unread_count             Count, TriggerToast
type Frame struct {
	Type          FrameType
	Notifications []models.Notification
	UnreadCount   *int
	Notification  *models.Notification
	Count         int
	TriggerToast  bool
}

// IsSnapshot reports whether the frame carries the full notification list.
func (f Frame) IsSnapshot() bool {
	return f.Type == FrameInitData || f.Type == FrameRefreshList
}

type wireFrame struct {
	Type          string                `json:"type"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   *int                  `json:"unread_count"`
	Notification  *models.Notification  `json:"notification"`
	Count         *int                  `json:"count"`
	TriggerToast  bool                  `json:"trigger_toast"`
}

// DecodeFrame parses one text message. Unknown types return ErrUnknownFrame.
func DecodeFrame(data []byte) (Frame, error) {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return Frame{}, fmt.Errorf("ws: invalid frame: %w", err)
	}

	switch w.Type {
	case string(FrameInitData), string(FrameRefreshList):
		notifications := w.Notifications
		if notifications == nil {
			notifications = []models.Notification{}
		}
		return Frame{
			Type:          FrameType(w.Type),
			Notifications: notifications,
			UnreadCount:   w.UnreadCount,
		}, nil

	case string(FrameNotification):
		if w.Notification == nil {
			return Frame{}, fmt.Errorf("ws: notification frame without notification")
		}
		return Frame{Type: FrameNotification, Notification: w.Notification}, nil

	case string(FrameUnreadCount), frameCountUpdated:
		count := w.Count
		if count == nil {
			// tolerate {"type":"unread_count","unread_count":N}
			count = w.UnreadCount
		}
		if count == nil {
			return Frame{}, fmt.Errorf("ws: %s frame without count", w.Type)
		}
		return Frame{Type: FrameUnreadCount, Count: *count, TriggerToast: w.TriggerToast}, nil

	default:
		return Frame{Type: FrameType(w.Type)}, fmt.Errorf("%w: %q", ErrUnknownFrame, w.Type)
	}
}

type ActionType string

const (
	ActionMarkRead    ActionType = "mark_read"
	ActionMarkAllRead ActionType = "mark_all_read"
	ActionDelete      ActionType = "delete"
	ActionViewDetail  ActionType = "view_detail"
)

// Action is a client -> server message. The server never acknowledges it;
// the effect shows up in a later snapshot or counter frame.
type Action struct {
	Action ActionType `json:"action"`
	ID     int64      `json:"id"`
}

// MarshalJSON writes id for every action except mark_all_read, so id 0 is
// still sent for the per-notification actions.
func (a Action) MarshalJSON() ([]byte, error) {
	if a.Action == ActionMarkAllRead {
		return json.Marshal(struct {
			Action ActionType `json:"action"`
		}{a.Action})
	}
	type wire Action
	return json.Marshal(wire(a))
}

func MarkRead(id int64) Action   { return Action{Action: ActionMarkRead, ID: id} }
func MarkAllRead() Action        { return Action{Action: ActionMarkAllRead} }
func Delete(id int64) Action     { return Action{Action: ActionDelete, ID: id} }
func ViewDetail(id int64) Action { return Action{Action: ActionViewDetail, ID: id} }
