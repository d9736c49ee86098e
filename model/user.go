package model

import "time"

type User struct {
	Id           int64     `gorm:"column:id;type:bigserial;autoIncrement;primaryKey;" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(191);not null;uniqueIndex:users_username_key;" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null;" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(32);not null;default:'user';" json:"role,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp(3);not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type UserAction string

const (
	UserActionUpsert UserAction = "upsert"
	UserActionInsert UserAction = "insert"
	UserActionDelete UserAction = "delete"
)

//---------------------------------------
//---------------------------------------

type UserSaveRes struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

type UserDeleteRes struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

type UserListRes struct {
	Success bool   `json:"success"`
	Table   string `json:"table"`
	Count   int    `json:"count"`
	Rows    []User `json:"rows"`
}
