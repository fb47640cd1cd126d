package services

import (
	"errors"

	"docman/helper"
	"docman/models"
	"docman/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgUserNotFound = "user not found"
	msgUserTaken    = "username or email already exists"
	msgNoResult     = "no result"
	msgNoUpdate     = "nothing to update"
	msgNoTerm       = "search term is required"
)

type UserService interface {
	GetUsers(caller models.Caller, page helper.PageParams) ([]models.User, int64, error)
	// GetUser returns the full record to admins and the reduced profile to
	// the user themselves.
	GetUser(id uint, caller models.Caller) (interface{}, error)
	UpdateUser(id uint, req models.UpdateUserRequest, caller models.Caller) (*models.User, error)
	DeleteUser(id uint, caller models.Caller) error
	GetUserDocuments(id uint, caller models.Caller, page helper.PageParams) ([]models.Document, int64, error)
	SearchUsers(term string, caller models.Caller, page helper.PageParams) ([]models.User, int64, error)
}

type userService struct {
	userRepo repositories.UserRepository
	docRepo  repositories.DocumentRepository
	roleRepo repositories.RoleRepository
	access   helper.AccessControl
	log      *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	docRepo repositories.DocumentRepository,
	roleRepo repositories.RoleRepository,
	access helper.AccessControl,
	log *zap.Logger,
) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{
		userRepo: userRepo,
		docRepo:  docRepo,
		roleRepo: roleRepo,
		access:   access,
		log:      log,
	}
}

func (s *userService) GetUsers(caller models.Caller, page helper.PageParams) ([]models.User, int64, error) {
	if !s.access.IsAdmin(caller.RoleID) {
		return nil, 0, models.ErrUnauthorized
	}

	users, total, err := s.userRepo.GetList(page)
	if err != nil {
		return nil, 0, storeError(s.log, "user.list", err, "", "")
	}
	return users, total, nil
}

func (s *userService) GetUser(id uint, caller models.Caller) (interface{}, error) {
	if !s.access.IsOwnerOrAdmin(caller, id) {
		return nil, models.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "user.get", err, msgUserNotFound, "")
	}

	if s.access.IsAdmin(caller.RoleID) {
		return user, nil
	}
	return user.Profile(), nil
}

func (s *userService) UpdateUser(id uint, req models.UpdateUserRequest, caller models.Caller) (*models.User, error) {
	if !s.access.IsOwnerOrAdmin(caller, id) {
		return nil, models.ErrUnauthorized
	}

	isAdmin := s.access.IsAdmin(caller.RoleID)
	if !isAdmin {
		req.RoleID = nil
	}
	if req.Empty() {
		return nil, models.ErrorBadRequest{Message: msgNoUpdate}
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "user.get", err, msgUserNotFound, "")
	}

	fields := map[string]interface{}{}

	if req.Username != nil || req.Email != nil {
		taken, err := s.userRepo.IsTaken(deref(req.Username), deref(req.Email), id)
		if err != nil {
			return nil, storeError(s.log, "user.is_taken", err, "", "")
		}
		if taken {
			return nil, models.ErrorConflict{Message: msgUserTaken}
		}
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Firstname != nil {
		fields["firstname"] = *req.Firstname
	}
	if req.Lastname != nil {
		fields["lastname"] = *req.Lastname
	}
	if req.Password != nil {
		hashed, err := hashPassword(s.log, *req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}
	if req.RoleID != nil {
		if _, err := s.roleRepo.GetByID(*req.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorBadRequest{Message: "role does not exist"}
			}
			return nil, storeError(s.log, "role.get", err, "", "")
		}
		fields["role_id"] = *req.RoleID
	}

	if err := s.userRepo.Update(user, fields); err != nil {
		return nil, storeError(s.log, "user.update", err, msgUserNotFound, msgUserTaken)
	}

	updated, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "user.get", err, msgUserNotFound, "")
	}
	return updated, nil
}

func (s *userService) DeleteUser(id uint, caller models.Caller) error {
	if !s.access.IsOwnerOrAdmin(caller, id) {
		return models.ErrUnauthorized
	}

	if err := s.userRepo.Delete(id); err != nil {
		return storeError(s.log, "user.delete", err, msgUserNotFound, "")
	}
	return nil
}

func (s *userService) GetUserDocuments(id uint, caller models.Caller, page helper.PageParams) ([]models.Document, int64, error) {
	filter := repositories.DocumentFilter{
		OwnerID:    id,
		PublicOnly: !s.access.IsOwnerOrAdmin(caller, id),
	}

	docs, total, err := s.docRepo.GetList(filter, page)
	if err != nil {
		return nil, 0, storeError(s.log, "document.list", err, "", "")
	}
	if total == 0 {
		return nil, 0, models.ErrorNotFound{Message: "no documents found"}
	}
	return docs, total, nil
}

func (s *userService) SearchUsers(term string, caller models.Caller, page helper.PageParams) ([]models.User, int64, error) {
	if !s.access.IsAdmin(caller.RoleID) {
		return nil, 0, models.ErrUnauthorized
	}

	term = helper.CleanSearchTerm(term)
	if term == "" {
		return nil, 0, models.ErrorBadRequest{Message: msgNoTerm}
	}

	users, total, err := s.userRepo.Search(helper.LikePattern(term), page)
	if err != nil {
		return nil, 0, storeError(s.log, "user.search", err, "", "")
	}
	if total == 0 {
		return nil, 0, models.ErrorNotFound{Message: msgNoResult}
	}
	return users, total, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
