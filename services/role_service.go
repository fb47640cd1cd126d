package services

import (
	"docman/helper"
	"docman/models"
	"docman/repositories"

	"go.uber.org/zap"
)

const (
	msgRoleNotFound = "role not found"
	msgRoleTaken    = "role already exists"
)

type RoleService interface {
	CreateRole(req models.RoleRequest, caller models.Caller) (*models.Role, error)
	GetRoles(caller models.Caller) ([]models.Role, error)
	GetRole(id uint, caller models.Caller) (*models.Role, error)
	UpdateRole(id uint, req models.RoleRequest, caller models.Caller) (*models.Role, error)
	DeleteRole(id uint, caller models.Caller) error
}

type roleService struct {
	roleRepo      repositories.RoleRepository
	access        helper.AccessControl
	defaultRoleID uint
	log           *zap.Logger
}

func NewRoleService(roleRepo repositories.RoleRepository, access helper.AccessControl, defaultRoleID uint, log *zap.Logger) RoleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &roleService{
		roleRepo:      roleRepo,
		access:        access,
		defaultRoleID: defaultRoleID,
		log:           log,
	}
}

func (s *roleService) CreateRole(req models.RoleRequest, caller models.Caller) (*models.Role, error) {
	if !s.access.IsAdmin(caller.RoleID) {
		return nil, models.ErrUnauthorized
	}

	// Check if role already exists
	exists, err := s.roleRepo.TitleExists(req.Title, 0)
	if err != nil {
		return nil, storeError(s.log, "role.title_exists", err, "", "")
	}
	if exists {
		return nil, models.ErrorConflict{Message: msgRoleTaken}
	}

	role := &models.Role{Title: req.Title}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, storeError(s.log, "role.create", err, "", msgRoleTaken)
	}
	return role, nil
}

func (s *roleService) GetRoles(caller models.Caller) ([]models.Role, error) {
	if !s.access.IsAdmin(caller.RoleID) {
		return nil, models.ErrUnauthorized
	}

	roles, err := s.roleRepo.GetAll()
	if err != nil {
		return nil, storeError(s.log, "role.list", err, "", "")
	}
	return roles, nil
}

func (s *roleService) GetRole(id uint, caller models.Caller) (*models.Role, error) {
	if !s.access.IsAdmin(caller.RoleID) {
		return nil, models.ErrUnauthorized
	}

	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "role.get", err, msgRoleNotFound, "")
	}
	return role, nil
}

func (s *roleService) UpdateRole(id uint, req models.RoleRequest, caller models.Caller) (*models.Role, error) {
	role, err := s.GetRole(id, caller)
	if err != nil {
		return nil, err
	}

	exists, err := s.roleRepo.TitleExists(req.Title, id)
	if err != nil {
		return nil, storeError(s.log, "role.title_exists", err, "", "")
	}
	if exists {
		return nil, models.ErrorConflict{Message: msgRoleTaken}
	}

	role.Title = req.Title
	if err := s.roleRepo.Update(role); err != nil {
		return nil, storeError(s.log, "role.update", err, msgRoleNotFound, msgRoleTaken)
	}
	return role, nil
}

// DeleteRole refuses to remove the admin and default roles, and any role
// still assigned to a user.
func (s *roleService) DeleteRole(id uint, caller models.Caller) error {
	if !s.access.IsAdmin(caller.RoleID) {
		return models.ErrUnauthorized
	}
	if id == s.access.AdminRoleID || id == s.defaultRoleID {
		return models.ErrorBadRequest{Message: "built-in roles cannot be deleted"}
	}

	if _, err := s.roleRepo.GetByID(id); err != nil {
		return storeError(s.log, "role.get", err, msgRoleNotFound, "")
	}

	users, err := s.roleRepo.CountUsers(id)
	if err != nil {
		return storeError(s.log, "role.count_users", err, "", "")
	}
	if users > 0 {
		return models.ErrorConflict{Message: "role is still assigned to users"}
	}

	if err := s.roleRepo.Delete(id); err != nil {
		return storeError(s.log, "role.delete", err, msgRoleNotFound, "")
	}
	return nil
}
