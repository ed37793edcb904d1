package models

import "time"

// KVEntry is one durable key-value row. The session manager stores a
// profile's serialized session collection under "sessions:{profileId}" and
// reads pre-sessions chat logs from "chat:{profileId}".
type KVEntry struct {
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(255)"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
