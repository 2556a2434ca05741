package entity

import "time"

// User is an account row. Password holds the bcrypt hash and never leaves the service layer.
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username  string    `gorm:"not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
