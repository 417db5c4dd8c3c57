// Package weather fetches the daily forecast for the trip destination
// from the Open-Meteo API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	fetchTimeout   = 5 * time.Second
)

// Day is one day of the forecast.
type Day struct {
	Date        string  `json:"date"`
	Code        int     `json:"code"`
	MaxTemp     float64 `json:"max_temp"`
	MinTemp     float64 `json:"min_temp"`
	RainChance  float64 `json:"rain_chance"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Client fetches forecasts for a fixed coordinate pair. The fetch has a
// bounded timeout; there is no retry.
type Client struct {
	http     *http.Client
	baseURL  string
	lat, lon float64
	timezone string
}

// NewClient creates a forecast client for the given coordinates.
func NewClient(lat, lon float64) *Client {
	return &Client{
		http:     &http.Client{Timeout: fetchTimeout},
		baseURL:  defaultBaseURL,
		lat:      lat,
		lon:      lon,
		timezone: "Asia/Tokyo",
	}
}

// Forecast returns the 7-day daily forecast.
func (c *Client) Forecast(ctx context.Context) ([]Day, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.lat))
	q.Set("longitude", fmt.Sprintf("%.4f", c.lon))
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("timezone", c.timezone)
	q.Set("forecast_days", "7")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("weather: status %d", resp.StatusCode)
	}

	var decoded struct {
		Daily struct {
			Time       []string  `json:"time"`
			Code       []int     `json:"weather_code"`
			MaxTemp    []float64 `json:"temperature_2m_max"`
			MinTemp    []float64 `json:"temperature_2m_min"`
			RainChance []float64 `json:"precipitation_probability_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("weather: decode: %w", err)
	}

	days := make([]Day, 0, len(decoded.Daily.Time))
	for i, date := range decoded.Daily.Time {
		d := Day{Date: date}
		if i < len(decoded.Daily.Code) {
			d.Code = decoded.Daily.Code[i]
		}
		if i < len(decoded.Daily.MaxTemp) {
			d.MaxTemp = decoded.Daily.MaxTemp[i]
		}
		if i < len(decoded.Daily.MinTemp) {
			d.MinTemp = decoded.Daily.MinTemp[i]
		}
		if i < len(decoded.Daily.RainChance) {
			d.RainChance = decoded.Daily.RainChance[i]
		}
		d.Icon = Icon(d.Code)
		d.Description = Describe(d.Code)
		days = append(days, d)
	}
	return days, nil
}

// Icon maps a WMO weather code to an emoji icon.
func Icon(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code >= 1 && code <= 3:
		return "⛅"
	case code == 45 || code == 48:
		return "🌫️"
	case isRainCode(code):
		return "🌧️"
	case isSnowCode(code):
		return "🌨️"
	case code == 95 || code == 96 || code == 99:
		return "⛈️"
	default:
		return "❓"
	}
}

// Describe maps a WMO weather code to a short description.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code == 51 || code == 53 || code == 55:
		return "Drizzle"
	case code == 61 || code == 63 || code == 65:
		return "Rain"
	case code == 80 || code == 81 || code == 82:
		return "Showers"
	case code == 95 || code == 96 || code == 99:
		return "Thunderstorm"
	default:
		return "Cloudy"
	}
}

func isRainCode(code int) bool {
	switch code {
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return true
	}
	return false
}

func isSnowCode(code int) bool {
	switch code {
	case 71, 73, 75, 77, 85, 86:
		return true
	}
	return false
}
