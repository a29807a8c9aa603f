package settings

import "time"

// DocumentKey is the fixed identifier of the singleton settings
// document in the settings collection.
const DocumentKey = "config"

// Settings is the small persisted venue configuration. It is loaded
// once at startup, cached, and replaced wholesale on every save.
type Settings struct {
	WeekendOnlyMode        bool
	AdminNotificationEmail string
}

// Defaults are used until a successful load and whenever loading fails;
// they are safe to operate on.
func Defaults() Settings {
	return Settings{
		WeekendOnlyMode:        false,
		AdminNotificationEmail: "admin@archatara.com",
	}
}

// DateAllowed reports whether a stay date passes the weekend-only
// restriction. When the restriction is off every date is allowed;
// otherwise only Friday, Saturday and Sunday nights are bookable.
func (s Settings) DateAllowed(date time.Time) bool {
	if !s.WeekendOnlyMode {
		return true
	}
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}
