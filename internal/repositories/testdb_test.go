package repositories

import (
	"fmt"
	"testing"
	"time"

	"collabboard/internal/enums"
	"collabboard/internal/models"
	"collabboard/internal/servers/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. The shared
// cache keeps all pooled connections on the same database; the name
// keeps tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createBoard(t *testing.T, db *gorm.DB, owner *models.User, title string, public bool) *models.Whiteboard {
	t.Helper()
	board := &models.Whiteboard{
		Title:    title,
		OwnerID:  owner.ID,
		IsPublic: public,
	}
	require.NoError(t, db.Create(board).Error)
	return board
}

func grantAccess(t *testing.T, db *gorm.DB, board *models.Whiteboard, user *models.User, permission enums.Permission) {
	t.Helper()
	require.NoError(t, db.Create(&models.WhiteboardCollaborator{
		WhiteboardID: board.ID,
		UserID:       user.ID,
		Permission:   permission,
	}).Error)
}

func createTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func linkTag(t *testing.T, db *gorm.DB, board *models.Whiteboard, tag *models.Tag) {
	t.Helper()
	tr := NewTagRepository(db)
	require.NoError(t, tr.AttachTag(board.ID, tag.ID))
}

func setTimestamps(t *testing.T, db *gorm.DB, board *models.Whiteboard, created, updated time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Whiteboard{}).
		Where("id = ?", board.ID).
		UpdateColumns(map[string]interface{}{
			"created_at": created,
			"updated_at": updated,
		}).Error)
}

func resultIDs(boards []models.Whiteboard) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(boards))
	for i := range boards {
		ids = append(ids, boards[i].ID)
	}
	return ids
}
