package fiber

import (
	"context"
	"net/http"

	"attribution-relay/internal/attribution/core/domain"
	"attribution-relay/internal/attribution/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RelayUseCase interface {
	ReadSnapshot(v domain.Visit) domain.Snapshot
	RecordPageview(ctx context.Context, v domain.Visit) usecase.PageviewResult
	RecordSignup(ctx context.Context, v domain.Visit, email, name string) domain.SignupConversion
	Debug(v domain.Visit) usecase.DebugInfo
}

type AttributionHandler struct {
	uc           RelayUseCase
	signupCookie string
}

func NewAttributionHandler(uc RelayUseCase, signupCookie string) *AttributionHandler {
	return &AttributionHandler{uc: uc, signupCookie: signupCookie}
}

// GetAttribution godoc
// @Summary Read the visitor's attribution
// @Description Rebuilds the attribution snapshot from cookies and the page URL
// @Tags Attribution
// @Produce json
// @Param page_url query string false "Page URL, defaults to the Referer header"
// @Success 200 {object} AttributionResponse
// @Router /attribution [get]
func (h *AttributionHandler) GetAttribution(c *fiber.Ctx) error {
	v := h.visitFrom(c, c.Query("page_url"))
	return c.Status(http.StatusOK).JSON(toAttributionResponse(h.uc.ReadSnapshot(v)))
}

// TrackPageview godoc
// @Summary Report a page view
// @Description Sends the page view to analytics when the visitor has attribution and runs signup detection
// @Tags Attribution
// @Accept json
// @Produce json
// @Param request body PageviewRequest false "Page view payload"
// @Success 200 {object} PageviewResponse
// @Failure 400 {object} ErrorResponse
// @Router /pageview [post]
func (h *AttributionHandler) TrackPageview(c *fiber.Ctx) error {
	var req PageviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "invalid_json",
			})
		}
	}

	res := h.uc.RecordPageview(c.UserContext(), h.visitFrom(c, req.PageURL))
	if res.SignupDetected {
		h.markSignupTracked(c)
	}

	return c.Status(http.StatusOK).JSON(PageviewResponse{
		Reported:       res.Reported,
		SignupDetected: res.SignupDetected,
	})
}

// TrackSignup godoc
// @Summary Report a completed signup
// @Description Sends the conversion to analytics and, in the background, to the webhook
// @Tags Attribution
// @Accept json
// @Produce json
// @Param request body SignupRequest false "Signup payload"
// @Success 202 {object} SignupResponse
// @Failure 400 {object} ErrorResponse
// @Router /signup [post]
func (h *AttributionHandler) TrackSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "invalid_json",
			})
		}
	}

	conv := h.uc.RecordSignup(c.UserContext(), h.visitFrom(c, req.PageURL), req.Email, req.Name)

	return c.Status(http.StatusAccepted).JSON(SignupResponse{
		EventType:           conv.EventType,
		VisitorID:           conv.VisitorID,
		Email:               conv.Email,
		Name:                conv.Name,
		Timestamp:           conv.Timestamp,
		PageURL:             conv.PageURL,
		FirstTouchSource:    conv.FirstTouchSource,
		FirstTouchMedium:    conv.FirstTouchMedium,
		FirstTouchCampaign:  conv.FirstTouchCampaign,
		FirstTouchTimestamp: conv.FirstTouchTimestamp,
	})
}

// Debug godoc
// @Summary Dump what the relay sees
// @Tags Attribution
// @Produce json
// @Param page_url query string false "Page URL, defaults to the Referer header"
// @Success 200 {object} DebugResponse
// @Router /debug [get]
func (h *AttributionHandler) Debug(c *fiber.Ctx) error {
	info := h.uc.Debug(h.visitFrom(c, c.Query("page_url")))
	return c.Status(http.StatusOK).JSON(DebugResponse{
		Attribution: toAttributionResponse(info.Snapshot),
		Cookies:     info.Cookies,
		URL:         info.URL,
	})
}

func toAttributionResponse(s domain.Snapshot) AttributionResponse {
	resp := AttributionResponse{
		VisitorID:       s.VisitorID,
		CurrentSource:   s.Current.Source,
		CurrentMedium:   s.Current.Medium,
		CurrentCampaign: s.Current.Campaign,
	}
	if ft := s.FirstTouch; ft != nil {
		resp.FirstTouch = &FirstTouchResponse{
			Source:    ft.Source,
			Medium:    ft.Medium,
			Campaign:  ft.Campaign,
			Timestamp: ft.Timestamp,
		}
	}
	return resp
}
