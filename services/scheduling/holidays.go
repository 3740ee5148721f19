package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lexaid/config"
	"lexaid/models"
	"lexaid/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HolidaySource provides the public-holiday calendar for a year.
type HolidaySource interface {
	HolidaysForYear(ctx context.Context, year int) ([]models.Holiday, error)
}

// CalendarificClient fetches public holidays from the external calendar
// provider and caches each (country, year) calendar in Redis.
type CalendarificClient struct {
	BaseURL    string
	APIKey     string
	Country    string
	HTTPClient *http.Client
	Cache      *redis.Client
}

// NewCalendarificClient builds a client from the application configuration.
func NewCalendarificClient(cache *redis.Client) *CalendarificClient {
	return &CalendarificClient{
		BaseURL:    config.AppConfig.HolidayAPIBaseURL,
		APIKey:     config.AppConfig.HolidayAPIKey,
		Country:    config.AppConfig.HolidayCountry,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
	}
}

type holidayAPIResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
			Type []string `json:"type"`
		} `json:"holidays"`
	} `json:"response"`
}

// HolidaysForYear returns the holiday calendar for the year, from cache when
// available. Provider failures degrade to an empty calendar with a logged
// warning, matching how a failed calendar fetch behaved in the portal UI.
func (c *CalendarificClient) HolidaysForYear(ctx context.Context, year int) ([]models.Holiday, error) {
	logger := utils.GetLogger()
	cacheKey := fmt.Sprintf("%s%s:%d", utils.HolidayCachePrefix, c.Country, year)

	if c.Cache != nil {
		cached, err := c.Cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var holidays []models.Holiday
			if uerr := json.Unmarshal([]byte(cached), &holidays); uerr == nil {
				return holidays, nil
			}
		} else if err != redis.Nil {
			logger.Warn("holiday cache read failed", zap.Error(err))
		}
	}

	holidays, err := c.fetch(ctx, year)
	if err != nil {
		logger.Warn("holiday provider unavailable, scheduling without holiday exclusions",
			zap.Int("year", year), zap.Error(err))
		return []models.Holiday{}, nil
	}

	if c.Cache != nil {
		if payload, merr := json.Marshal(holidays); merr == nil {
			if serr := c.Cache.Set(ctx, cacheKey, payload, utils.HolidayCacheTTL).Err(); serr != nil {
				logger.Warn("holiday cache write failed", zap.Error(serr))
			}
		}
	}

	return holidays, nil
}

func (c *CalendarificClient) fetch(ctx context.Context, year int) ([]models.Holiday, error) {
	url := fmt.Sprintf("%s/holidays?api_key=%s&country=%s&year=%d", c.BaseURL, c.APIKey, c.Country, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday provider returned status %d", resp.StatusCode)
	}

	var body holidayAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}

	holidays := make([]models.Holiday, 0, len(body.Response.Holidays))
	for _, h := range body.Response.Holidays {
		entry := models.Holiday{Name: h.Name, Date: h.Date.ISO}
		if len(h.Type) > 0 {
			entry.Type = h.Type[0]
		}
		// The provider returns full timestamps for some entries; keep the
		// calendar-day part only.
		if len(entry.Date) > 10 {
			entry.Date = entry.Date[:10]
		}
		holidays = append(holidays, entry)
	}
	return holidays, nil
}
