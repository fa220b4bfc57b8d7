package domain

import "net/url"

// FirstTouch is the earliest campaign origin recorded for a visitor by the landing page.
type FirstTouch struct {
	Source    string `json:"utm_source"`
	Medium    string `json:"utm_medium"`
	Campaign  string `json:"utm_campaign"`
	Timestamp string `json:"timestamp"`
}

type CampaignParams struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
}

// Snapshot is rebuilt from the visit on every read and never stored.
type Snapshot struct {
	VisitorID  *string        `json:"visitor_id"`
	FirstTouch *FirstTouch    `json:"first_touch"`
	Current    CampaignParams `json:"current"`
}

func (s Snapshot) HasAttribution() bool {
	return s.VisitorID != nil || s.FirstTouch != nil
}

// Visit is everything the app sent us about one page load.
type Visit struct {
	Cookies       map[string]string
	CookieHeader  string
	PageURL       *url.URL
	UserAgent     string
	SignupTracked bool
}

func (v Visit) Query(name string) string {
	if v.PageURL == nil {
		return ""
	}
	return v.PageURL.Query().Get(name)
}

func (v Visit) Path() string {
	if v.PageURL == nil {
		return ""
	}
	return v.PageURL.Path
}

func (v Visit) Href() string {
	if v.PageURL == nil {
		return ""
	}
	return v.PageURL.String()
}
