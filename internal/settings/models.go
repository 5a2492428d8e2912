package settings

import "time"

// Setting is a key/value row of site configuration. Only keys on the public
// allow-list are served to anonymous clients; everything else is admin-only.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "content.settings" }

// publicKeys is the set of settings safe to expose without authentication.
var publicKeys = map[string]struct{}{
	"site_title":    {},
	"site_tagline":  {},
	"contact_email": {},
	"github_url":    {},
	"linkedin_url":  {},
}
