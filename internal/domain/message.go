package domain

import "time" // Timestamps

// Message Model
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                         // Primary key, also the display order
	Content   string    `gorm:"type:text" json:"content"`                                     // Free text body
	UserID    uint      `gorm:"index;not null" json:"user_id"`                                // Foreign key to the sending manager
	Sender    *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"sender"` // Sending manager
	CreatedAt time.Time `json:"created_at"`                                                   // Creation timestamp
}
