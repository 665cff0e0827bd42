package entity

import "strings"

// NotificationPreference is the delivery channel a user has chosen
type NotificationPreference string

const (
	PreferenceUnset NotificationPreference = ""
	PreferenceSMS   NotificationPreference = "sms"
	PreferenceEmail NotificationPreference = "email"
	PreferenceInApp NotificationPreference = "in-app"
)

// ParsePreference normalizes a raw preference value. Anything that is not one
// of the recognized channels maps to PreferenceUnset, which never notifies.
func ParsePreference(raw string) NotificationPreference {
	switch p := NotificationPreference(strings.ToLower(strings.TrimSpace(raw))); p {
	case PreferenceSMS, PreferenceEmail, PreferenceInApp:
		return p
	default:
		return PreferenceUnset
	}
}

// IsValid reports whether the preference selects a delivery channel
func (p NotificationPreference) IsValid() bool {
	return p == PreferenceSMS || p == PreferenceEmail || p == PreferenceInApp
}

func (p NotificationPreference) String() string {
	if p == PreferenceUnset {
		return "unset"
	}
	return string(p)
}
