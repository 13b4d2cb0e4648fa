package domain

import "time"

// SettingCategory is a closed set; the repository rejects anything else.
type SettingCategory string

const (
	CategoryGeneral        SettingCategory = "general"
	CategoryAuthentication SettingCategory = "authentication"
	CategorySecurity       SettingCategory = "security"
	CategoryAppearance     SettingCategory = "appearance"
)

// AllCategories lists the valid setting categories.
var AllCategories = []SettingCategory{
	CategoryGeneral,
	CategoryAuthentication,
	CategorySecurity,
	CategoryAppearance,
}

// IsValidCategory reports whether c is a recognised setting category.
func IsValidCategory(c SettingCategory) bool {
	for _, valid := range AllCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Setting is a single configuration entry, unique on (category, key).
// Value is polymorphic: booleans, numbers, strings and lists all occur.
type Setting struct {
	Category    SettingCategory `json:"category"`
	Key         string          `json:"key"`
	Value       any             `json:"value"`
	Description string          `json:"description,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Well-known setting keys consulted by the auth flows.
const (
	SettingAllowRegistration        = "allowRegistration"
	SettingRequireEmailVerification = "requireEmailVerification"
	SettingMaxLoginAttempts         = "maxLoginAttempts"
	SettingLockoutDuration          = "lockoutDuration"
)

// DefaultSettings is the catalogue installed by InitializeDefaults.
// Existing (category, key) pairs are never overwritten.
func DefaultSettings() []Setting {
	return []Setting{
		{Category: CategoryAuthentication, Key: SettingRequireEmailVerification, Value: false, Description: "Require email verification for new accounts"},
		{Category: CategoryAuthentication, Key: SettingAllowRegistration, Value: true, Description: "Allow new user registration"},
		{Category: CategoryAuthentication, Key: "allowedDomains", Value: []string{}, Description: "List of allowed email domains for registration"},
		{Category: CategoryAuthentication, Key: "sessionTimeout", Value: 30, Description: "Session timeout in minutes"},

		{Category: CategorySecurity, Key: "passwordMinLength", Value: 8, Description: "Minimum password length"},
		{Category: CategorySecurity, Key: SettingMaxLoginAttempts, Value: 5, Description: "Maximum failed login attempts before lockout"},
		{Category: CategorySecurity, Key: SettingLockoutDuration, Value: 30, Description: "Account lockout duration in minutes"},
		{Category: CategorySecurity, Key: "requireTwoFactor", Value: false, Description: "Require two-factor authentication"},

		{Category: CategoryAppearance, Key: "theme", Value: "light", Description: "Default theme (light/dark)"},
		{Category: CategoryAppearance, Key: "primaryColor", Value: "#1890ff", Description: "Primary color for the application"},
		{Category: CategoryAppearance, Key: "logoUrl", Value: "", Description: "URL to the application logo"},

		{Category: CategoryGeneral, Key: "siteName", Value: "Edison", Description: "Site name"},
		{Category: CategoryGeneral, Key: "siteDescription", Value: "Video Management System", Description: "Site description"},
		{Category: CategoryGeneral, Key: "contactEmail", Value: "support@edison.com", Description: "Contact email address"},
		{Category: CategoryGeneral, Key: "maintenanceMode", Value: false, Description: "Enable maintenance mode"},
	}
}
