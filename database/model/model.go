// Package model holds the GORM models persisted by rolepanel.
package model

// Fixed role names.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Login    string `json:"login" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	RoleId   int    `json:"roleId" gorm:"not null;index"`

	// Role exists so AutoMigrate emits the foreign key. It is never preloaded;
	// reads that need the role name go through UserWithRole.
	Role *Role `json:"-" gorm:"foreignKey:RoleId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// UserWithRole is a user row joined with the name of its role.
type UserWithRole struct {
	Id       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"`
	RoleId   int    `json:"roleId"`
	RoleName string `json:"roleName"`
}
