package model

import "time"

// UserTableName is the singular, fixed table name for user records.
const UserTableName = "user"

// User represents a registered user. The password hash is serialised so the
// registration response carries the full stored record.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"password_hash" gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps GORM from pluralising the table.
func (User) TableName() string {
	return UserTableName
}
