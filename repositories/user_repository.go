package repositories

import (
	"docman/helper"
	"docman/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByLogin(username, email string) (*models.User, error)
	IsTaken(username, email string, excludeID uint) (bool, error)
	GetList(page helper.PageParams) ([]models.User, int64, error)
	Search(pattern string, page helper.PageParams) ([]models.User, int64, error)
	Update(user *models.User, fields map[string]interface{}) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

// GetByLogin finds the user whose username or email matches. Empty values
// never match.
func (r *userRepository) GetByLogin(username, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("(username = ? AND username <> '') OR (email = ? AND email <> '')", username, email).
		Order("id").
		First(&user).Error
	return &user, err
}

func (r *userRepository) IsTaken(username, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetList(page helper.PageParams) ([]models.User, int64, error) {
	return r.list(r.db.Model(&models.User{}), page)
}

func (r *userRepository) Search(pattern string, page helper.PageParams) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Where("(LOWER(firstname) LIKE ? OR LOWER(lastname) LIKE ? OR LOWER(username) LIKE ?)", pattern, pattern, pattern)
	return r.list(query, page)
}

func (r *userRepository) list(query *gorm.DB, page helper.PageParams) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(page.Order).Offset(page.Offset).Limit(page.Limit).Find(&users).Error
	return users, total, err
}

func (r *userRepository) Update(user *models.User, fields map[string]interface{}) error {
	return r.db.Model(user).Updates(fields).Error
}

// Delete removes the user together with the documents they own.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
