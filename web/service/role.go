package service

import (
	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/database/model"

	"gorm.io/gorm"
)

type RoleService struct {
	DB *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

func (s *RoleService) CreateRole(name string) (*model.Role, error) {
	role := &model.Role{Name: name}
	if err := s.DB.Create(role).Error; err != nil {
		return nil, database.AsConstraintViolation(s.DB, err)
	}
	return role, nil
}

// FindRoleByName returns gorm.ErrRecordNotFound when no role has that name.
func (s *RoleService) FindRoleByName(name string) (*model.Role, error) {
	role := &model.Role{}
	if err := s.DB.Where("name = ?", name).Take(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) FindOrCreateRole(name string) (*model.Role, error) {
	return database.EnsureRole(s.DB, name)
}
