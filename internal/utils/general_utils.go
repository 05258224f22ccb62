package utils

import (
	"time"

	"gorm.io/gorm"
)

func StrToTime(value string) (*time.Time, error) {
	layout := "2006-01-02 15:04:05"
	result, err := time.Parse(layout, value)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Paginate clamps page to 1 and size to [1, 100].
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = 10
		}
		if size > 100 {
			size = 100
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}
