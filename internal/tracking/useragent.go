package tracking

import (
	"github.com/mileusna/useragent"
)

// DeviceInfo - дескриптор браузера/ОС/устройства в той форме,
// в которой он хранится в jsonb-колонках лидов и событий.
type DeviceInfo struct {
	Browser NameVersion `json:"browser"`
	OS      NameVersion `json:"os"`
	Device  DeviceMeta  `json:"device"`
}

type NameVersion struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type DeviceMeta struct {
	Model string `json:"model,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ParseUserAgent разбирает строку user-agent в дескриптор устройства.
// Пустой или непарсибельный user-agent дает nil - поле останется null.
func ParseUserAgent(raw string) *DeviceInfo {
	if raw == "" {
		return nil
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" && ua.OS == "" && ua.Device == "" {
		return nil
	}

	info := &DeviceInfo{
		Browser: NameVersion{Name: ua.Name, Version: ua.Version},
		OS:      NameVersion{Name: ua.OS, Version: ua.OSVersion},
		Device:  DeviceMeta{Model: ua.Device, Type: deviceType(ua)},
	}
	return info
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Desktop:
		return "desktop"
	default:
		return ""
	}
}
