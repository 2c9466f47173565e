package scan

import (
	"strings"

	"cardlink/internal/models"
)

// classifierRule maps a user-agent token to a device category.
type classifierRule struct {
	token    string
	category models.DeviceType
}

// classifierRules is evaluated in order, first match wins. Mobile tokens
// come before desktop tokens: some desktop browsers embed strings that
// would otherwise false-match. This ordering is a contract the device
// breakdown statistic depends on.
var classifierRules = []classifierRule{
	{"iphone", models.DeviceIOS},
	{"ipad", models.DeviceIOS},
	{"ipod", models.DeviceIOS},
	{"android", models.DeviceAndroid},
	{"windows", models.DeviceDesktop},
	{"macintosh", models.DeviceDesktop},
	{"cros", models.DeviceDesktop},
	{"x11", models.DeviceDesktop},
	{"linux", models.DeviceDesktop},
}

// Classify maps a raw user-agent string to a device category. It is pure
// and total: unrecognized or empty input yields Unknown, never an error.
func Classify(userAgent string) models.DeviceType {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return models.DeviceUnknown
	}
	for _, rule := range classifierRules {
		if strings.Contains(ua, rule.token) {
			return rule.category
		}
	}
	return models.DeviceUnknown
}
