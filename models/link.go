package models

import (
	"time"
)

// AllowedIcons is the set of icons accepted for a Link
var AllowedIcons = []string{
	"Link", "CoinVertical", "Headset", "Gear", "Globe", "Book", "Github",
	"Linkedin", "Twitter", "Youtube", "Instagram", "Facebook", "Discord",
	"Code", "Database", "Layers", "Terminal", "Rocket", "Lightbulb",
}

// Link represents a bookmark shown on the admin landing page. It is
// unrelated to the order lifecycle.
type Link struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	URL         string    `gorm:"not null" json:"url"`
	Description string    `json:"description"`
	Icon        string    `gorm:"not null;default:'Link'" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Link model
func (Link) TableName() string {
	return "links"
}

// IsAllowedIcon reports whether icon is in the allowlist.
func IsAllowedIcon(icon string) bool {
	for _, allowed := range AllowedIcons {
		if icon == allowed {
			return true
		}
	}
	return false
}
