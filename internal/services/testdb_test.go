package services

import (
	"fmt"
	"testing"

	"collabboard/internal/enums"
	"collabboard/internal/models"
	"collabboard/internal/repositories"
	"collabboard/internal/servers/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	db             *gorm.DB
	whiteboardRepo *repositories.WhiteboardRepository
	tagRepo        *repositories.TagRepository
	whiteboards    *WhiteboardService
	search         *SearchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)

	whiteboardRepo := repositories.NewWhiteboardRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	return &fixture{
		db:             db,
		whiteboardRepo: whiteboardRepo,
		tagRepo:        tagRepo,
		whiteboards:    NewWhiteboardService(whiteboardRepo, tagRepo),
		search:         NewSearchService(whiteboardRepo),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) board(t *testing.T, owner *models.User, title string, public bool) *models.Whiteboard {
	t.Helper()
	board, err := f.whiteboards.CreateWhiteboard(owner.ID, &models.CreateWhiteboardRequestBody{
		Title:    title,
		IsPublic: public,
	})
	require.NoError(t, err)
	return board
}

func (f *fixture) share(t *testing.T, board *models.Whiteboard, owner, user *models.User, permission enums.Permission) {
	t.Helper()
	_, err := f.whiteboards.ShareWhiteboard(board.ID, owner.ID, &models.ShareWhiteboardRequestBody{
		UserID:     user.ID,
		Permission: permission,
	})
	require.NoError(t, err)
}

func penElement() *models.CreateElementRequestBody {
	return &models.CreateElementRequestBody{
		Type:  enums.DrawingTypePen,
		X:     1,
		Y:     2,
		Color: "#000000",
	}
}
