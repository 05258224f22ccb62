package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessibleWhiteboards is the mandatory access scope: a whiteboard is
// a candidate iff the user owns it, it is public, or the user holds a
// collaborator grant of any level. Every search-path query starts from
// this scope; filter parameters can never bypass it.
func AccessibleWhiteboards(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"whiteboards.owner_id = ? OR whiteboards.is_public = ? OR whiteboards.id IN (?)",
			userID, true,
			db.Session(&gorm.Session{NewDB: true}).
				Table("whiteboard_collaborators").
				Select("whiteboard_id").
				Where("user_id = ?", userID),
		)
	}
}

// ActiveTagLinks is the single predicate for "this tag link still
// counts". Soft deleted rows stay in the table but must never show up
// in filtering or result hydration, so every query path shares this
// scope instead of repeating the condition.
func ActiveTagLinks(db *gorm.DB) *gorm.DB {
	return db.Where("whiteboard_tags.deleted_at IS NULL")
}
