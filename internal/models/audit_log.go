package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id" bson:"-"`

	DocumentID string `gorm:"-" json:"document_id,omitempty" bson:"_id,omitempty"`

	UserID   *uint  `json:"user_id" bson:"user_id,omitempty"`
	Action   string `gorm:"size:50;not null" json:"action" bson:"action"`
	Entity   string `gorm:"size:50" json:"entity" bson:"entity"`
	EntityID *uint  `json:"entity_id" bson:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata" bson:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
