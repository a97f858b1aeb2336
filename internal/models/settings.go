package models

import "time"

// SettingsID is the primary key of the single site_settings row.
const SettingsID = "global"

type SiteSettings struct {
	ID              string
	ResumeURL       *string
	ResumeUpdatedAt *time.Time
	HeroRoles       []string
}
