package usecase

import (
	"net/url"

	"attribution-relay/internal/attribution/core/domain"

	"github.com/tidwall/gjson"
)

// ReadSnapshot rebuilds the visitor's attribution from cookies and the page
// URL. It has no side effects, so repeated reads of the same visit agree.
func (uc *RelayUseCase) ReadSnapshot(v domain.Visit) domain.Snapshot {
	snap := domain.Snapshot{
		FirstTouch: uc.parseFirstTouch(uc.cookie(v, uc.cookies.FirstTouch)),
		Current: domain.CampaignParams{
			Source:   v.Query(ParamSource),
			Medium:   v.Query(ParamMedium),
			Campaign: v.Query(ParamCampaign),
		},
	}

	visitorID := uc.cookie(v, uc.cookies.VisitorID)
	if visitorID == "" {
		visitorID = v.Query(ParamVisitorID)
	}
	if visitorID != "" {
		snap.VisitorID = &visitorID
	}

	return snap
}

// parseFirstTouch returns nil for anything that is not a JSON object.
func (uc *RelayUseCase) parseFirstTouch(raw string) *domain.FirstTouch {
	if raw == "" {
		return nil
	}
	if !gjson.Valid(raw) {
		uc.logger.Debug("could not parse first touch cookie", "value", raw)
		return nil
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		uc.logger.Debug("first touch cookie is not an object", "value", raw)
		return nil
	}

	return &domain.FirstTouch{
		Source:    doc.Get("utm_source").String(),
		Medium:    doc.Get("utm_medium").String(),
		Campaign:  doc.Get("utm_campaign").String(),
		Timestamp: doc.Get("timestamp").String(),
	}
}

// cookie returns the URI-decoded cookie value, or the raw value when it is not
// valid percent-encoding.
func (uc *RelayUseCase) cookie(v domain.Visit, name string) string {
	raw := v.Cookies[name]
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

type DebugInfo struct {
	Snapshot domain.Snapshot `json:"attribution"`
	Cookies  string          `json:"cookies"`
	URL      string          `json:"url"`
}

// Debug dumps what the relay sees for a visit.
func (uc *RelayUseCase) Debug(v domain.Visit) DebugInfo {
	info := DebugInfo{
		Snapshot: uc.ReadSnapshot(v),
		Cookies:  v.CookieHeader,
		URL:      v.Href(),
	}
	uc.logger.Debug("debug requested", "attribution", info.Snapshot, "cookies", info.Cookies, "url", info.URL)
	return info
}
