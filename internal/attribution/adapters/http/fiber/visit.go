package fiber

import (
	"net/url"

	"attribution-relay/internal/attribution/core/domain"

	"github.com/gofiber/fiber/v2"
)

// visitFrom collects the visitor's cookies and the page they are on. The page
// is taken from pageURL, then the Referer header, then the request itself.
func (h *AttributionHandler) visitFrom(c *fiber.Ctx, pageURL string) domain.Visit {
	cookies := make(map[string]string)
	c.Request().Header.VisitAllCookie(func(key, value []byte) {
		cookies[string(key)] = string(value)
	})

	return domain.Visit{
		Cookies:       cookies,
		CookieHeader:  c.Get(fiber.HeaderCookie),
		PageURL:       pageLocation(c, pageURL),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
		SignupTracked: cookies[h.signupCookie] == "true",
	}
}

func pageLocation(c *fiber.Ctx, pageURL string) *url.URL {
	for _, candidate := range []string{pageURL, c.Get(fiber.HeaderReferer)} {
		if candidate == "" {
			continue
		}
		if u, err := url.Parse(candidate); err == nil {
			return u
		}
	}

	u, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return &url.URL{Path: c.Path()}
	}
	return u
}

func (h *AttributionHandler) markSignupTracked(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:        h.signupCookie,
		Value:       "true",
		Path:        "/",
		SessionOnly: true,
		HTTPOnly:    true,
		SameSite:    fiber.CookieSameSiteLaxMode,
	})
}
