package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"attribution-relay/internal/attribution/core/domain"
	"attribution-relay/internal/attribution/core/ports"
	"attribution-relay/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

const (
	ParamVisitorID = "tzc_vid"
	ParamSource    = "utm_source"
	ParamMedium    = "utm_medium"
	ParamCampaign  = "utm_campaign"
)

type CookieNames struct {
	VisitorID     string
	FirstTouch    string
	SignupTracked string
	GAClient      string
}

func DefaultCookieNames() CookieNames {
	return CookieNames{
		VisitorID:     "tzc_visitor_id",
		FirstTouch:    "tzc_first_touch",
		SignupTracked: "tzc_signup_tracked",
		GAClient:      "_ga",
	}
}

var DefaultSignupMarkers = []string{"/welcome", "/onboarding", "/home"}

// RelayUseCase reads attribution from a visit and forwards it to the analytics
// collector, the conversion webhook and the local journal. Sink failures are
// logged and dropped.
type RelayUseCase struct {
	analytics ports.AnalyticsPort
	webhook   ports.WebhookPort
	journal   ports.JournalPort

	logger        *slog.Logger
	metrics       *metrics.Metrics
	cookies       CookieNames
	signupMarkers []string
	now           func() time.Time
	newID         func() string

	inflight sync.WaitGroup
}

type Option func(uc *RelayUseCase)

func WithLogger(logger *slog.Logger) Option {
	return func(uc *RelayUseCase) {
		uc.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *RelayUseCase) {
		uc.metrics = m
	}
}

func WithJournal(j ports.JournalPort) Option {
	return func(uc *RelayUseCase) {
		uc.journal = j
	}
}

func WithCookieNames(names CookieNames) Option {
	return func(uc *RelayUseCase) {
		uc.cookies = names
	}
}

func WithSignupMarkers(markers []string) Option {
	return func(uc *RelayUseCase) {
		uc.signupMarkers = markers
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *RelayUseCase) {
		uc.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(uc *RelayUseCase) {
		uc.newID = newID
	}
}

// NewRelayUseCase builds the relay. analytics and webhook may be nil, in which
// case the corresponding sink is skipped.
func NewRelayUseCase(analytics ports.AnalyticsPort, webhook ports.WebhookPort, opts ...Option) *RelayUseCase {
	uc := &RelayUseCase{
		analytics:     analytics,
		webhook:       webhook,
		logger:        slog.Default(),
		cookies:       DefaultCookieNames(),
		signupMarkers: DefaultSignupMarkers,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type PageviewResult struct {
	Snapshot       domain.Snapshot
	Reported       bool
	SignupDetected bool
	Conversion     *domain.SignupConversion
}

// RecordPageview reports the page view when the visitor carries any
// attribution, then runs signup detection for the page.
func (uc *RelayUseCase) RecordPageview(ctx context.Context, v domain.Visit) PageviewResult {
	snap := uc.ReadSnapshot(v)
	res := PageviewResult{Snapshot: snap}

	if snap.HasAttribution() {
		params := map[string]any{
			"event_category": domain.EventCategory,
			"page_path":      v.Path(),
		}
		if snap.VisitorID != nil {
			params["tzc_visitor_id"] = *snap.VisitorID
		}
		if ft := snap.FirstTouch; ft != nil {
			params["first_touch_source"] = ft.Source
			params["first_touch_medium"] = ft.Medium
			params["first_touch_campaign"] = ft.Campaign
		}

		uc.sendAnalytics(ctx, v, snap, domain.EventPageview, params)
		uc.record(ctx, v, snap, domain.EventPageview, params, "pageview")
		res.Reported = true

		uc.logger.Debug("attribution data found", "snapshot", snap)
	} else {
		uc.metrics.IncrementSuppressed()
	}

	if conv, ok := uc.detectSignup(ctx, v, snap); ok {
		res.SignupDetected = true
		res.Conversion = &conv
	}

	return res
}

// RecordSignup reports a completed signup. It always reports, even for
// visitors without attribution.
func (uc *RelayUseCase) RecordSignup(ctx context.Context, v domain.Visit, email, name string) domain.SignupConversion {
	return uc.recordSignup(ctx, v, uc.ReadSnapshot(v), email, name, "manual")
}

func (uc *RelayUseCase) detectSignup(ctx context.Context, v domain.Visit, snap domain.Snapshot) (domain.SignupConversion, bool) {
	if v.SignupTracked || snap.VisitorID == nil || !uc.isSignupPage(v.Path()) {
		return domain.SignupConversion{}, false
	}
	return uc.recordSignup(ctx, v, snap, "", "", "auto_detected"), true
}

func (uc *RelayUseCase) isSignupPage(path string) bool {
	for _, marker := range uc.signupMarkers {
		if marker != "" && strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

func (uc *RelayUseCase) recordSignup(ctx context.Context, v domain.Visit, snap domain.Snapshot, email, name, origin string) domain.SignupConversion {
	conv := domain.SignupConversion{
		EventType: domain.EventTypeSignup,
		VisitorID: snap.VisitorID,
		Email:     email,
		Name:      name,
		Timestamp: uc.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		PageURL:   v.Href(),
	}
	if ft := snap.FirstTouch; ft != nil {
		conv.FirstTouchSource = stringPtr(ft.Source)
		conv.FirstTouchMedium = stringPtr(ft.Medium)
		conv.FirstTouchCampaign = stringPtr(ft.Campaign)
		conv.FirstTouchTimestamp = stringPtr(ft.Timestamp)
	}

	params := map[string]any{
		"method": domain.SignupMethodEmail,
	}
	if snap.VisitorID != nil {
		params["tzc_visitor_id"] = *snap.VisitorID
	}
	if conv.FirstTouchSource != nil {
		params["first_touch_source"] = *conv.FirstTouchSource
		params["first_touch_medium"] = *conv.FirstTouchMedium
	}

	uc.sendAnalytics(ctx, v, snap, domain.EventSignup, params)
	uc.dispatchWebhook(ctx, conv)
	uc.record(ctx, v, snap, domain.EventSignup, params, "signup", origin)

	uc.logger.Debug("signup tracked", "conversion", conv)
	return conv
}

func (uc *RelayUseCase) sendAnalytics(ctx context.Context, v domain.Visit, snap domain.Snapshot, name string, params map[string]any) {
	if uc.analytics == nil {
		uc.metrics.IncrementEvent(name, metrics.SinkAnalytics, metrics.OutcomeSkipped)
		return
	}

	start := time.Now()
	err := uc.analytics.SendEvent(ctx, domain.AnalyticsEvent{
		ClientID: uc.clientID(v, snap),
		Name:     name,
		Params:   params,
	})
	uc.metrics.ObserveSink(metrics.SinkAnalytics, start)
	if err != nil {
		uc.metrics.IncrementEvent(name, metrics.SinkAnalytics, metrics.OutcomeFailed)
		uc.logger.Warn("analytics send failed", "event", name, "error", err)
		return
	}
	uc.metrics.IncrementEvent(name, metrics.SinkAnalytics, metrics.OutcomeSent)
	uc.logger.Debug("sent to analytics", "event", name, "params", params)
}

// dispatchWebhook sends the conversion in the background. Nobody waits for the
// result except Wait during shutdown.
func (uc *RelayUseCase) dispatchWebhook(ctx context.Context, conv domain.SignupConversion) {
	if uc.webhook == nil || !uc.webhook.Configured() {
		uc.metrics.IncrementEvent(conv.EventType, metrics.SinkWebhook, metrics.OutcomeSkipped)
		uc.logger.Debug("webhook not configured", "data", conv)
		return
	}

	sendCtx := context.WithoutCancel(ctx)
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()

		start := time.Now()
		err := uc.webhook.SendConversion(sendCtx, conv)
		uc.metrics.ObserveSink(metrics.SinkWebhook, start)
		if err != nil {
			uc.metrics.IncrementEvent(conv.EventType, metrics.SinkWebhook, metrics.OutcomeFailed)
			uc.logger.Error("webhook error", "error", err)
			return
		}
		uc.metrics.IncrementEvent(conv.EventType, metrics.SinkWebhook, metrics.OutcomeSent)
	}()
}

// Wait blocks until background webhook sends have finished.
func (uc *RelayUseCase) Wait() {
	uc.inflight.Wait()
}

func (uc *RelayUseCase) record(ctx context.Context, v domain.Visit, snap domain.Snapshot, name string, params map[string]any, tags ...string) {
	if uc.journal == nil {
		return
	}

	eventTime := uc.now().UTC()
	e := &domain.JournalEntry{
		EventName: name,
		Channel:   channelOf(v.UserAgent),
		PagePath:  v.Path(),
		EventTime: eventTime,
		Tags:      tags,
		Params:    params,
	}
	if snap.VisitorID != nil {
		e.VisitorID = *snap.VisitorID
	}
	if ft := snap.FirstTouch; ft != nil {
		e.FirstTouchSource = ft.Source
		e.FirstTouchMedium = ft.Medium
		e.FirstTouchCampaign = ft.Campaign
	}
	e.DedupeKey = buildDedupeKey(e)

	start := time.Now()
	created, err := uc.journal.InsertEvent(ctx, e)
	uc.metrics.ObserveSink(metrics.SinkJournal, start)
	switch {
	case err != nil:
		uc.metrics.IncrementEvent(name, metrics.SinkJournal, metrics.OutcomeFailed)
		uc.logger.Warn("journal insert failed", "event", name, "error", err)
	case !created:
		uc.metrics.IncrementEvent(name, metrics.SinkJournal, metrics.OutcomeSkipped)
	default:
		uc.metrics.IncrementEvent(name, metrics.SinkJournal, metrics.OutcomeSent)
	}
}

func buildDedupeKey(e *domain.JournalEntry) string {
	// event_name + visitor_id + channel + page_path + unix_millis
	return fmt.Sprintf("%s|%s|%s|%s|%d",
		e.EventName,
		e.VisitorID,
		e.Channel,
		e.PagePath,
		e.EventTime.UnixMilli(),
	)
}

// clientID prefers the GA cookie so server-sent events join the browser's
// GA session, then the visitor id, then a random id.
func (uc *RelayUseCase) clientID(v domain.Visit, snap domain.Snapshot) string {
	if id := gaClientID(v.Cookies[uc.cookies.GAClient]); id != "" {
		return id
	}
	if snap.VisitorID != nil {
		return *snap.VisitorID
	}
	return uc.newID()
}

// gaClientID turns "GA1.1.123456789.1700000000" into "123456789.1700000000".
func gaClientID(cookie string) string {
	parts := strings.Split(cookie, ".")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1]
}

func channelOf(userAgent string) string {
	if userAgent == "" {
		return domain.ChannelWeb
	}
	ua := useragent.New(userAgent)
	switch {
	case ua.Bot():
		return domain.ChannelBot
	case ua.Mobile():
		return domain.ChannelMobile
	default:
		return domain.ChannelWeb
	}
}

func stringPtr(s string) *string {
	return &s
}
