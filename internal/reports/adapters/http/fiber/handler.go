package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"attribution-relay/internal/reports/core/domain"
	"attribution-relay/internal/reports/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetReportUseCase interface {
	Execute(ctx context.Context, in usecase.GetReportInput) (*domain.Report, error)
}

type ReportHandler struct {
	uc GetReportUseCase
}

func NewReportHandler(uc GetReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetReport godoc
// @Summary Count relayed events
// @Description Returns relayed event counts, optionally grouped by channel, first-touch dimension or time bucket
// @Tags Reports
// @Produce json
// @Param event_name query string true "Event name (tzc_app_pageview | sign_up)"
// @Param from query int true "From timestamp"
// @Param to query int true "To timestamp"
// @Param channel query string false "Channel filter: web | mobile | bot"
// @Param group_by query string false "Group by: channel | source | medium | campaign | time"
// @Param interval query string false "Interval: hour | day"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	eventName := c.Query("event_name", "")
	if eventName == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "event_name is required",
		})
	}

	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'from' parameter",
		})
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'to' parameter",
		})
	}

	var channelPtr *string
	channel := c.Query("channel", "")
	if channel != "" {
		channelPtr = &channel
	}

	in := usecase.GetReportInput{
		EventName: eventName,
		From:      from,
		To:        to,
		Channel:   channelPtr,
		GroupBy:   c.Query("group_by", ""),
		Interval:  c.Query("interval", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidReportQuery),
			errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidGroupBy),
			errors.Is(err, usecase.ErrInvalidInterval):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := ReportResponse{
		EventName:      res.EventName,
		From:           res.From,
		To:             res.To,
		TotalCount:     res.TotalCount,
		UniqueVisitors: res.UniqueVisitors,
		GroupBy:        res.GroupBy,
		Groups:         make([]ReportGroupResponse, 0, len(res.Groups)),
	}

	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, ReportGroupResponse{
			Key:            g.Key,
			TotalCount:     g.TotalCount,
			UniqueVisitors: g.UniqueVisitors,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
