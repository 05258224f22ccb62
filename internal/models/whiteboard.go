package models

import (
	"github.com/google/uuid"
)

// Whiteboard is the top level shareable unit. Deleting one cascades to
// its elements, collaborator grants and tag links (explicit cleanup in
// the repository, not implicit graph traversal).
type Whiteboard struct {
	Base
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	IsPublic    bool      `gorm:"default:false;not null" json:"is_public"`

	Owner         *User                    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Elements      []DrawingElement         `gorm:"foreignKey:WhiteboardID" json:"elements,omitempty"`
	Collaborators []WhiteboardCollaborator `gorm:"foreignKey:WhiteboardID" json:"collaborators,omitempty"`
	TagLinks      []WhiteboardTag          `gorm:"foreignKey:WhiteboardID" json:"tag_links,omitempty"`
}
