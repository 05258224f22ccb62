package repositories

import (
	"errors"
	"fmt"
	"strings"

	"collabboard/internal/enums"
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WhiteboardRepository struct {
	db *gorm.DB
}

func NewWhiteboardRepository(db *gorm.DB) *WhiteboardRepository {
	return &WhiteboardRepository{
		db: db,
	}
}

func (wr *WhiteboardRepository) CreateWhiteboard(whiteboard *models.Whiteboard) (*models.Whiteboard, error) {
	result := wr.db.Create(whiteboard)
	if err := result.Error; err != nil {
		return nil, err
	}
	if result.RowsAffected <= 0 {
		return nil, errs.ErrWhiteboardCreationFailed
	}
	return whiteboard, nil
}

func (wr *WhiteboardRepository) FindWhiteboardByID(id uuid.UUID) (*models.Whiteboard, error) {
	var whiteboard models.Whiteboard
	if err := wr.db.Preload("Owner").First(&whiteboard, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWhiteboardNotFound
		}
		return nil, err
	}
	return &whiteboard, nil
}

func (wr *WhiteboardRepository) FindOwnWhiteboards(ownerID uuid.UUID, page, size int) ([]models.Whiteboard, int64, error) {
	var whiteboards []models.Whiteboard
	var total int64
	if err := wr.db.Model(&models.Whiteboard{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := wr.db.
		Scopes(utils.Paginate(page, size)).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, id ASC").
		Find(&whiteboards).Error; err != nil {
		return nil, 0, err
	}
	return whiteboards, total, nil
}

func (wr *WhiteboardRepository) UpdateWhiteboard(whiteboard *models.Whiteboard) error {
	return wr.db.Save(whiteboard).Error
}

// DeleteWhiteboard removes the whiteboard and everything hanging off
// it: elements, collaborator grants and tag links, in one transaction.
// Usage counters of actively linked tags are decremented before the
// link rows go away.
func (wr *WhiteboardRepository) DeleteWhiteboard(id uuid.UUID) error {
	return wr.db.Transaction(func(tx *gorm.DB) error {
		var activeTagIDs []uuid.UUID
		if err := tx.Model(&models.WhiteboardTag{}).
			Scopes(ActiveTagLinks).
			Where("whiteboard_id = ?", id).
			Pluck("tag_id", &activeTagIDs).Error; err != nil {
			return err
		}
		if len(activeTagIDs) > 0 {
			if err := tx.Model(&models.Tag{}).
				Where("id IN ? AND usage_count > 0", activeTagIDs).
				UpdateColumn("usage_count", gorm.Expr("usage_count - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("whiteboard_id = ?", id).Delete(&models.DrawingElement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("whiteboard_id = ?", id).Delete(&models.WhiteboardCollaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("whiteboard_id = ?", id).Delete(&models.WhiteboardTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Whiteboard{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrWhiteboardNotFound
		}
		return nil
	})
}

// FindGrant returns the collaborator grant for the pair, or nil when
// none exists. Absence is not an error here: access checks fail closed
// on a nil grant.
func (wr *WhiteboardRepository) FindGrant(whiteboardID, userID uuid.UUID) (*models.WhiteboardCollaborator, error) {
	var grant models.WhiteboardCollaborator
	err := wr.db.Where("whiteboard_id = ? AND user_id = ?", whiteboardID, userID).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

// UpsertGrant creates the grant or updates the permission of an
// existing one; unique per (whiteboard, user).
func (wr *WhiteboardRepository) UpsertGrant(whiteboardID, userID uuid.UUID, permission enums.Permission) (*models.WhiteboardCollaborator, error) {
	var grant *models.WhiteboardCollaborator
	err := wr.db.Transaction(func(tx *gorm.DB) error {
		var existing models.WhiteboardCollaborator
		err := tx.Where("whiteboard_id = ? AND user_id = ?", whiteboardID, userID).First(&existing).Error
		if err == nil {
			existing.Permission = permission
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			grant = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created := models.WhiteboardCollaborator{
			WhiteboardID: whiteboardID,
			UserID:       userID,
			Permission:   permission,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		grant = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (wr *WhiteboardRepository) UpdateGrantPermission(whiteboardID, userID uuid.UUID, permission enums.Permission) error {
	result := wr.db.Model(&models.WhiteboardCollaborator{}).
		Where("whiteboard_id = ? AND user_id = ?", whiteboardID, userID).
		Update("permission", permission)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrCollaboratorNotFound
	}
	return nil
}

func (wr *WhiteboardRepository) DeleteGrant(whiteboardID, userID uuid.UUID) error {
	result := wr.db.Where("whiteboard_id = ? AND user_id = ?", whiteboardID, userID).
		Delete(&models.WhiteboardCollaborator{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrCollaboratorNotFound
	}
	return nil
}

// ListParticipants returns the owner followed by all collaborators.
func (wr *WhiteboardRepository) ListParticipants(whiteboardID uuid.UUID) ([]models.User, error) {
	whiteboard, err := wr.FindWhiteboardByID(whiteboardID)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, 4)
	if whiteboard.Owner != nil {
		users = append(users, *whiteboard.Owner)
	}
	var collaborators []models.User
	if err := wr.db.Model(&models.User{}).
		Joins("JOIN whiteboard_collaborators ON whiteboard_collaborators.user_id = users.id").
		Where("whiteboard_collaborators.whiteboard_id = ?", whiteboardID).
		Order("users.name ASC").
		Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return append(users, collaborators...), nil
}

func (wr *WhiteboardRepository) FindElements(whiteboardID uuid.UUID) ([]models.DrawingElement, error) {
	var elements []models.DrawingElement
	if err := wr.db.Where("whiteboard_id = ?", whiteboardID).
		Order("created_at ASC, id ASC").
		Find(&elements).Error; err != nil {
		return nil, err
	}
	return elements, nil
}

func (wr *WhiteboardRepository) FindElement(whiteboardID, elementID uuid.UUID) (*models.DrawingElement, error) {
	var element models.DrawingElement
	err := wr.db.Where("id = ? AND whiteboard_id = ?", elementID, whiteboardID).First(&element).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrElementNotFound
		}
		return nil, err
	}
	return &element, nil
}

func (wr *WhiteboardRepository) CreateElement(element *models.DrawingElement) (*models.DrawingElement, error) {
	if err := wr.db.Create(element).Error; err != nil {
		return nil, err
	}
	return element, nil
}

func (wr *WhiteboardRepository) SaveElement(element *models.DrawingElement) error {
	return wr.db.Save(element).Error
}

func (wr *WhiteboardRepository) DeleteElement(whiteboardID, elementID uuid.UUID) error {
	result := wr.db.Where("id = ? AND whiteboard_id = ?", elementID, whiteboardID).
		Delete(&models.DrawingElement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrElementNotFound
	}
	return nil
}

func (wr *WhiteboardRepository) DeleteAllElements(whiteboardID uuid.UUID) (int64, error) {
	result := wr.db.Where("whiteboard_id = ?", whiteboardID).Delete(&models.DrawingElement{})
	return result.RowsAffected, result.Error
}

// ReplaceElements is the save operation: delete everything, insert the
// new batch, atomically. Not an incremental diff.
func (wr *WhiteboardRepository) ReplaceElements(whiteboardID uuid.UUID, elements []models.DrawingElement) ([]models.DrawingElement, error) {
	err := wr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("whiteboard_id = ?", whiteboardID).Delete(&models.DrawingElement{}).Error; err != nil {
			return err
		}
		for i := range elements {
			if err := tx.Create(&elements[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return elements, nil
}

// searchScope turns validated filters into the composite WHERE clause.
// Access scoping comes first and is never bypassable; tags are AND via
// a grouped distinct count over active links; authors are OR; the date
// range is inclusive; free text matches title or description case
// insensitively.
func (wr *WhiteboardRepository) searchScope(userID uuid.UUID, filters *models.SearchFilters) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(AccessibleWhiteboards(userID))

		if len(filters.Tags) > 0 {
			db = db.Where(
				"whiteboards.id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Table("whiteboard_tags").
					Select("whiteboard_id").
					Scopes(ActiveTagLinks).
					Where("tag_id IN ?", filters.Tags).
					Group("whiteboard_id").
					Having("COUNT(DISTINCT tag_id) = ?", len(filters.Tags)),
			)
		}

		if len(filters.Authors) > 0 {
			db = db.Where("whiteboards.owner_id IN ?", filters.Authors)
		}

		if filters.DateRange != nil {
			column := "whiteboards.created_at"
			if filters.DateRange.Type == models.DateRangeTypeUpdated {
				column = "whiteboards.updated_at"
			}
			if filters.DateRange.Start != nil {
				db = db.Where(column+" >= ?", *filters.DateRange.Start)
			}
			if filters.DateRange.End != nil {
				db = db.Where(column+" <= ?", *filters.DateRange.End)
			}
		}

		if filters.Text != "" {
			pattern := "%" + strings.ToLower(filters.Text) + "%"
			db = db.Where(
				"LOWER(whiteboards.title) LIKE ? OR LOWER(whiteboards.description) LIKE ?",
				pattern, pattern,
			)
		}

		return db
	}
}

// FindByFilters executes the composite search: total is counted before
// pagination, the sort gets a deterministic id tie-break, and owner
// plus active tag links are preloaded in batches rather than per row.
func (wr *WhiteboardRepository) FindByFilters(userID uuid.UUID, filters *models.SearchFilters, limit, offset int) ([]models.Whiteboard, int64, error) {
	scope := wr.searchScope(userID, filters)

	var total int64
	if err := wr.db.Model(&models.Whiteboard{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := map[string]string{
		models.SortByCreatedAt: "created_at",
		models.SortByUpdatedAt: "updated_at",
		models.SortByTitle:     "title",
	}[filters.SortBy]
	direction := "ASC"
	if filters.SortOrder == models.SortOrderDesc {
		direction = "DESC"
	}

	var whiteboards []models.Whiteboard
	if err := wr.db.Model(&models.Whiteboard{}).
		Scopes(scope).
		Order(fmt.Sprintf("whiteboards.%s %s, whiteboards.id ASC", column, direction)).
		Offset(offset).
		Limit(limit).
		Preload("Owner").
		Preload("TagLinks", ActiveTagLinks).
		Preload("TagLinks.Tag").
		Find(&whiteboards).Error; err != nil {
		return nil, 0, err
	}
	return whiteboards, total, nil
}

type collaboratorCount struct {
	WhiteboardID uuid.UUID `gorm:"column:whiteboard_id"`
	Cnt          int       `gorm:"column:cnt"`
}

// CountCollaborators batches the collaborator counts for a result page
// into a single grouped query.
func (wr *WhiteboardRepository) CountCollaborators(whiteboardIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(whiteboardIDs))
	if len(whiteboardIDs) == 0 {
		return counts, nil
	}
	var rows []collaboratorCount
	if err := wr.db.Model(&models.WhiteboardCollaborator{}).
		Select("whiteboard_id, COUNT(*) AS cnt").
		Where("whiteboard_id IN ?", whiteboardIDs).
		Group("whiteboard_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.WhiteboardID] = row.Cnt
	}
	return counts, nil
}

// DistinctTags lists the tags used on whiteboards the user can see,
// most used first.
func (wr *WhiteboardRepository) DistinctTags(userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := wr.db.Model(&models.Tag{}).
		Distinct("tags.*").
		Joins("JOIN whiteboard_tags ON whiteboard_tags.tag_id = tags.id").
		Joins("JOIN whiteboards ON whiteboards.id = whiteboard_tags.whiteboard_id").
		Scopes(ActiveTagLinks, AccessibleWhiteboards(userID)).
		Order("tags.usage_count DESC, tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// DistinctAuthors lists the owners of whiteboards the user can see,
// by name.
func (wr *WhiteboardRepository) DistinctAuthors(userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := wr.db.Model(&models.User{}).
		Distinct("users.*").
		Joins("JOIN whiteboards ON whiteboards.owner_id = users.id").
		Scopes(AccessibleWhiteboards(userID)).
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
