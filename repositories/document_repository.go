package repositories

import (
	"docman/helper"
	"docman/models"

	"gorm.io/gorm"
)

// DocumentFilter narrows a document list. Zero values impose nothing.
type DocumentFilter struct {
	// OwnerID keeps documents owned by this user.
	OwnerID uint
	// VisibleTo keeps documents owned by this user or public ones.
	VisibleTo uint
	// PublicOnly keeps public documents.
	PublicOnly bool
	// Pattern is a LOWER(...) LIKE pattern matched against title or content.
	Pattern string
}

type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id uint) (*models.Document, error)
	TitleExists(title string, excludeID uint) (bool, error)
	GetList(filter DocumentFilter, page helper.PageParams) ([]models.Document, int64, error)
	Update(doc *models.Document, fields map[string]interface{}) error
	Delete(id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, id).Error
	return &doc, err
}

func (r *documentRepository) TitleExists(title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Document{}).Where("title = ?", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *documentRepository) GetList(filter DocumentFilter, page helper.PageParams) ([]models.Document, int64, error) {
	var docs []models.Document
	var total int64

	query := r.db.Model(&models.Document{})

	if filter.OwnerID > 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.PublicOnly {
		query = query.Where("access = ?", models.AccessPublic)
	}
	if filter.VisibleTo > 0 {
		query = query.Where("(owner_id = ? OR access = ?)", filter.VisibleTo, models.AccessPublic)
	}
	if filter.Pattern != "" {
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", filter.Pattern, filter.Pattern)
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(page.Order).Offset(page.Offset).Limit(page.Limit).Find(&docs).Error
	return docs, total, err
}

func (r *documentRepository) Update(doc *models.Document, fields map[string]interface{}) error {
	return r.db.Model(doc).Updates(fields).Error
}

func (r *documentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
