package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Geolocation - ответ IP-lookup сервиса (формат ipapi.co)
type Geolocation struct {
	IP          string  `json:"ip,omitempty"`
	City        string  `json:"city,omitempty"`
	Region      string  `json:"region,omitempty"`
	CountryName string  `json:"country_name,omitempty"`
	Postal      string  `json:"postal,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	Org         string  `json:"org,omitempty"`
}

// GeoClient - best-effort клиент внешнего IP-lookup сервиса.
// Любая ошибка означает "геолокации нет", не ошибку операции.
type GeoClient struct {
	endpoint string
	client   *http.Client
}

func NewGeoClient(endpoint string, timeout time.Duration) *GeoClient {
	return &GeoClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FirstForwardedIP выделяет адрес клиента из значения X-Forwarded-For:
// при цепочке "client, proxy1, proxy2" клиент - первый адрес.
func FirstForwardedIP(ip string) string {
	if idx := strings.Index(ip, ","); idx >= 0 {
		ip = ip[:idx]
	}
	return strings.TrimSpace(ip)
}

// IsPublicIP сообщает, имеет ли смысл внешний lookup для адреса
func IsPublicIP(ip string) bool {
	parsed := net.ParseIP(FirstForwardedIP(ip))
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified() && !parsed.IsLinkLocalUnicast()
}

// Lookup запрашивает геолокацию для ip. Приватные и пустые адреса
// не резолвятся внешним сервисом - вернется ошибка, вызывающий код
// должен оставить поле пустым.
func (g *GeoClient) Lookup(ctx context.Context, ip string) (*Geolocation, error) {
	ip = FirstForwardedIP(ip)

	url := fmt.Sprintf("%s/%s/json/", g.endpoint, ip)
	if ip == "" || ip == "unknown" {
		url = g.endpoint + "/json/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation lookup: unexpected status %d", resp.StatusCode)
	}

	var geo Geolocation
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, err
	}
	return &geo, nil
}
