package domain

import "time"

const (
	EventPageview     = "tzc_app_pageview"
	EventSignup       = "sign_up"
	EventTypeSignup   = "signup_complete"
	EventCategory     = "attribution"
	SignupMethodEmail = "email"
	ChannelWeb        = "web"
	ChannelMobile     = "mobile"
	ChannelBot        = "bot"
)

// AnalyticsEvent is one event for the analytics collector.
type AnalyticsEvent struct {
	ClientID string
	Name     string
	Params   map[string]any
}

// SignupConversion is the webhook body for a completed signup.
type SignupConversion struct {
	EventType           string  `json:"event_type"`
	VisitorID           *string `json:"visitor_id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Timestamp           string  `json:"timestamp"`
	PageURL             string  `json:"page_url"`
	FirstTouchSource    *string `json:"first_touch_source,omitempty"`
	FirstTouchMedium    *string `json:"first_touch_medium,omitempty"`
	FirstTouchCampaign  *string `json:"first_touch_campaign,omitempty"`
	FirstTouchTimestamp *string `json:"first_touch_timestamp,omitempty"`
}

// JournalEntry is a relayed event as recorded locally.
type JournalEntry struct {
	EventName          string
	Channel            string
	VisitorID          string
	FirstTouchSource   string
	FirstTouchMedium   string
	FirstTouchCampaign string
	PagePath           string
	EventTime          time.Time
	Tags               []string
	Params             map[string]any
	DedupeKey          string
}
