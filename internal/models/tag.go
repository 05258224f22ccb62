package models

// Tag has a unique name and a denormalized usage counter maintained on
// attach/detach.
type Tag struct {
	Base
	Name       string  `gorm:"unique;not null;index" json:"name"`
	Color      *string `json:"color"`
	UsageCount int     `gorm:"default:0;not null" json:"usage_count"`
}
