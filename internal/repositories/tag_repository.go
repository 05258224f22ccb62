package repositories

import (
	"errors"
	"strings"

	"collabboard/internal/errs"
	"collabboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		db: db,
	}
}

func (tr *TagRepository) CreateTag(tag *models.Tag) (*models.Tag, error) {
	if err := tr.db.Create(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrTagAlreadyExists
		}
		return nil, err
	}
	return tag, nil
}

func (tr *TagRepository) FindTagByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := tr.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (tr *TagRepository) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := tr.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTag links a tag to a whiteboard. A soft deleted link is
// reactivated instead of duplicated; attaching an already active link
// is a no-op. The tag usage counter moves with the link state.
func (tr *TagRepository) AttachTag(whiteboardID, tagID uuid.UUID) error {
	return tr.db.Transaction(func(tx *gorm.DB) error {
		var link models.WhiteboardTag
		err := tx.Where("whiteboard_id = ? AND tag_id = ?", whiteboardID, tagID).First(&link).Error
		if err == nil {
			if link.Active() {
				return nil
			}
			link.DeletedAt = nil
			if err := tx.Save(&link).Error; err != nil {
				return err
			}
			return bumpUsage(tx, tagID, +1)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		link = models.WhiteboardTag{
			WhiteboardID: whiteboardID,
			TagID:        tagID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		return bumpUsage(tx, tagID, +1)
	})
}

// DetachTag soft deletes the link. The row stays so history survives,
// but every read path filters it out through ActiveTagLinks.
func (tr *TagRepository) DetachTag(whiteboardID, tagID uuid.UUID) error {
	return tr.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WhiteboardTag{}).
			Scopes(ActiveTagLinks).
			Where("whiteboard_id = ? AND tag_id = ?", whiteboardID, tagID).
			Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrTagNotFound
		}
		return bumpUsage(tx, tagID, -1)
	})
}

// ActiveTags returns the tags actively linked to a whiteboard.
func (tr *TagRepository) ActiveTags(whiteboardID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := tr.db.Model(&models.Tag{}).
		Joins("JOIN whiteboard_tags ON whiteboard_tags.tag_id = tags.id").
		Scopes(ActiveTagLinks).
		Where("whiteboard_tags.whiteboard_id = ?", whiteboardID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func bumpUsage(tx *gorm.DB, tagID uuid.UUID, delta int) error {
	query := tx.Model(&models.Tag{}).Where("id = ?", tagID)
	if delta < 0 {
		query = query.Where("usage_count > 0")
	}
	return query.UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}

// isUniqueViolation covers both the postgres driver error text and the
// sqlite one used in tests; gorm does not normalize this across
// drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
