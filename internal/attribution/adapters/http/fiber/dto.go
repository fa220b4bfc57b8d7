package fiber

// PageviewRequest represents a page view reported by the app
// @Description Page view payload. page_url defaults to the Referer header.
type PageviewRequest struct {
	PageURL string `json:"page_url" example:"https://app.example.com/welcome?utm_source=newsletter"`
}

type PageviewResponse struct {
	Reported       bool `json:"reported"`
	SignupDetected bool `json:"signup_detected"`
}

// SignupRequest represents a manually reported signup
// @Description Signup payload
type SignupRequest struct {
	Email   string `json:"email" example:"ada@example.com"`
	Name    string `json:"name" example:"Ada"`
	PageURL string `json:"page_url"`
}

type FirstTouchResponse struct {
	Source    string `json:"utm_source"`
	Medium    string `json:"utm_medium"`
	Campaign  string `json:"utm_campaign"`
	Timestamp string `json:"timestamp"`
}

type AttributionResponse struct {
	VisitorID       *string             `json:"visitor_id"`
	FirstTouch      *FirstTouchResponse `json:"first_touch"`
	CurrentSource   string              `json:"current_source"`
	CurrentMedium   string              `json:"current_medium"`
	CurrentCampaign string              `json:"current_campaign"`
}

type SignupResponse struct {
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

type DebugResponse struct {
	Attribution AttributionResponse `json:"attribution"`
	Cookies     string              `json:"cookies"`
	URL         string              `json:"url"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_json"`
	Message string `json:"message,omitempty" example:"request body is not valid JSON"`
}
