package repositories

import (
	"docman/models"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(role *models.Role) error
	GetByID(id uint) (*models.Role, error)
	TitleExists(title string, excludeID uint) (bool, error)
	GetAll() ([]models.Role, error)
	Update(role *models.Role) error
	Delete(id uint) error
	CountUsers(id uint) (int64, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

func (r *roleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, id).Error
	return &role, err
}

func (r *roleRepository) TitleExists(title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Role{}).Where("LOWER(title) = LOWER(?)", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *roleRepository) GetAll() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Order("id asc").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

func (r *roleRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roleRepository) CountUsers(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role_id = ?", id).Count(&count).Error
	return count, err
}
