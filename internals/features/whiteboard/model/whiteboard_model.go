package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WhiteboardDataModel holds one JSON snapshot per team. Draw events are
// relayed live and never persisted; only explicit saves land here.
type WhiteboardDataModel struct {
	WhiteboardID uuid.UUID `json:"whiteboard_id" gorm:"column:whiteboard_id;type:uuid;primaryKey"`

	WhiteboardTeamID uuid.UUID      `json:"whiteboard_team_id" gorm:"column:whiteboard_team_id;type:uuid;not null;uniqueIndex"`
	WhiteboardData   datatypes.JSON `json:"whiteboard_data" gorm:"column:whiteboard_data;type:jsonb"`

	WhiteboardUpdatedAt time.Time `json:"whiteboard_updated_at" gorm:"column:whiteboard_updated_at;autoUpdateTime"`
}

func (WhiteboardDataModel) TableName() string {
	return "whiteboard_data"
}

func (m *WhiteboardDataModel) BeforeCreate(tx *gorm.DB) error {
	if m.WhiteboardID == uuid.Nil {
		m.WhiteboardID = uuid.New()
	}
	return nil
}
