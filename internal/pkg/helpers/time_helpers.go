package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DurationSetting parses the configured duration of setting. Unparsable and
// non-positive values fall back, with a warning naming the setting.
func DurationSetting(setting, value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err == nil && d > 0 {
		return d
	}
	event := log.Warn().Str("setting", setting).Str("value", value).Dur("fallback", fallback)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("Invalid duration setting, using fallback")
	return fallback
}
