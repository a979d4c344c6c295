// Package service holds the data operations used by the controllers and
// middleware.
package service

import (
	"errors"

	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/database/model"
	"github.com/mhsanaei/rolepanel/logger"
	"github.com/mhsanaei/rolepanel/util/crypto"

	"gorm.io/gorm"
)

// ErrRoleNotFound is returned by Register when the default role is missing.
var ErrRoleNotFound = errors.New("role not found")

type UserService struct {
	DB    *gorm.DB
	roles *RoleService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, roles: NewRoleService(db)}
}

func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := s.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}

// CreateUser stores a user whose password is already hashed. A duplicate login
// or an unknown role id yields a *database.ConstraintViolation.
func (s *UserService) CreateUser(login, hashedPassword string, roleId int) (*model.User, error) {
	user := &model.User{
		Login:    login,
		Password: hashedPassword,
		RoleId:   roleId,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, database.AsConstraintViolation(s.DB, err)
	}
	return user, nil
}

func (s *UserService) FindUserByLogin(login string, includeRole bool) (*model.UserWithRole, error) {
	return s.findUser(includeRole, "users.login = ?", login)
}

func (s *UserService) FindUserById(id int, includeRole bool) (*model.UserWithRole, error) {
	return s.findUser(includeRole, "users.id = ?", id)
}

func (s *UserService) findUser(includeRole bool, query string, arg any) (*model.UserWithRole, error) {
	user := &model.UserWithRole{}
	tx := s.DB.Model(&model.User{})
	if includeRole {
		tx = tx.Select("users.id, users.login, users.password, users.role_id, roles.name AS role_name").
			Joins("JOIN roles ON roles.id = users.role_id")
	} else {
		tx = tx.Select("users.id, users.login, users.password, users.role_id")
	}
	if err := tx.Where(query, arg).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser returns the user with its role when password matches. An unknown
// login and a wrong password both yield (nil, nil); err is set only when the
// store fails.
func (s *UserService) CheckUser(login string, password string) (*model.UserWithRole, error) {
	user, err := s.FindUserByLogin(login, true)
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, nil
	}
	return user, nil
}

// Register creates a user with the default role.
func (s *UserService) Register(login string, password string) (*model.User, error) {
	role, err := s.roles.FindRoleByName(model.RoleUser)
	if database.IsNotFound(err) {
		return nil, ErrRoleNotFound
	} else if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	return s.CreateUser(login, hash, role.Id)
}
