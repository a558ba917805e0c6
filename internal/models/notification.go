package models

import (
	"time"
)

// Verb is the interaction type a notification reports.
type Verb string

const (
	VerbNewOrder        Verb = "new_order"
	VerbOrderCancelled  Verb = "order_cancelled"
	VerbOrderDelivered  Verb = "order_delivered"
	VerbNewReview       Verb = "new_review"
	VerbPayoutProcessed Verb = "payout_processed"
	VerbProductApproved Verb = "product_approved"
	VerbProductRejected Verb = "product_rejected"
	VerbLowStock        Verb = "low_stock"
	VerbAccountVerified Verb = "account_verified"
	VerbMessage         Verb = "message"
)

var knownVerbs = map[Verb]string{
	VerbNewOrder:        "New order",
	VerbOrderCancelled:  "Order cancelled",
	VerbOrderDelivered:  "Order delivered",
	VerbNewReview:       "New review",
	VerbPayoutProcessed: "Payout processed",
	VerbProductApproved: "Product approved",
	VerbProductRejected: "Product rejected",
	VerbLowStock:        "Low stock",
	VerbAccountVerified: "Account verified",
	VerbMessage:         "Message",
}

// Known reports whether v is one of the verbs the dashboard renders specially.
func (v Verb) Known() bool {
	_, ok := knownVerbs[v]
	return ok
}

// Label is the fallback display text when verb_display is missing.
func (v Verb) Label() string {
	if label, ok := knownVerbs[v]; ok {
		return label
	}
	return string(v)
}

// Ref is the actor or target of a notification. The server sends whichever
// of name/username/title applies.
type Ref struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Title    string `json:"title,omitempty"`
}

func (r *Ref) Label() string {
	if r == nil {
		return ""
	}
	switch {
	case r.Name != "":
		return r.Name
	case r.Username != "":
		return r.Username
	default:
		return r.Title
	}
}

type Notification struct {
	ID          int64                  `json:"id"`
	Verb        Verb                   `json:"verb"`
	VerbDisplay string                 `json:"verb_display"`
	Data        map[string]interface{} `json:"data,omitempty"`
	Actor       *Ref                   `json:"actor,omitempty"`
	Target      *Ref                   `json:"target,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	IsRead      bool                   `json:"is_read"`
}

// Title is verb_display, or the verb label when the server left it empty.
func (n Notification) Title() string {
	if n.VerbDisplay != "" {
		return n.VerbDisplay
	}
	return n.Verb.Label()
}

// Message is data.message, falling back to "<actor> <verb> <target>".
func (n Notification) Message() string {
	if msg, ok := n.Data["message"].(string); ok && msg != "" {
		return msg
	}
	msg := n.Title()
	if actor := n.Actor.Label(); actor != "" {
		msg = actor + ": " + msg
	}
	if target := n.Target.Label(); target != "" {
		msg += " (" + target + ")"
	}
	return msg
}

// URL is data.url when present.
func (n Notification) URL() string {
	if u, ok := n.Data["url"].(string); ok {
		return u
	}
	return ""
}
