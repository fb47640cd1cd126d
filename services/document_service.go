package services

import (
	"docman/helper"
	"docman/models"
	"docman/repositories"

	"go.uber.org/zap"
)

const (
	msgDocumentNotFound = "document not found"
	msgTitleTaken       = "a document with this title already exists"
)

type DocumentService interface {
	CreateDocument(req models.CreateDocumentRequest, caller models.Caller) (*models.Document, error)
	GetDocuments(caller models.Caller, page helper.PageParams) ([]models.Document, int64, error)
	GetDocument(id uint, caller models.Caller) (*models.Document, error)
	UpdateDocument(id uint, req models.UpdateDocumentRequest, caller models.Caller) (*models.Document, error)
	DeleteDocument(id uint, caller models.Caller) error
	SearchDocuments(term string, caller models.Caller, page helper.PageParams) ([]models.Document, int64, error)
}

type documentService struct {
	docRepo repositories.DocumentRepository
	access  helper.AccessControl
	log     *zap.Logger
}

func NewDocumentService(docRepo repositories.DocumentRepository, access helper.AccessControl, log *zap.Logger) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{
		docRepo: docRepo,
		access:  access,
		log:     log,
	}
}

func (s *documentService) CreateDocument(req models.CreateDocumentRequest, caller models.Caller) (*models.Document, error) {
	access := req.Access
	if access == "" {
		access = models.AccessPublic
	}
	if !access.Valid() {
		return nil, models.ErrorBadRequest{Message: "access must be public or private"}
	}

	// Check if title is already in use
	exists, err := s.docRepo.TitleExists(req.Title, 0)
	if err != nil {
		return nil, storeError(s.log, "document.title_exists", err, "", "")
	}
	if exists {
		return nil, models.ErrorConflict{Message: msgTitleTaken}
	}

	doc := &models.Document{
		Title:   req.Title,
		Content: req.Content,
		Access:  access,
		OwnerID: caller.UserID,
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, storeError(s.log, "document.create", err, "", msgTitleTaken)
	}
	return doc, nil
}

func (s *documentService) GetDocuments(caller models.Caller, page helper.PageParams) ([]models.Document, int64, error) {
	docs, total, err := s.docRepo.GetList(s.visibleTo(caller), page)
	if err != nil {
		return nil, 0, storeError(s.log, "document.list", err, "", "")
	}
	return docs, total, nil
}

func (s *documentService) GetDocument(id uint, caller models.Caller) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "document.get", err, msgDocumentNotFound, "")
	}

	if !s.access.CanReadDocument(caller, doc) {
		return nil, models.ErrUnauthorized
	}
	return doc, nil
}

func (s *documentService) UpdateDocument(id uint, req models.UpdateDocumentRequest, caller models.Caller) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "document.get", err, msgDocumentNotFound, "")
	}

	if !s.access.IsOwnerOrAdmin(caller, doc.OwnerID) {
		return nil, models.ErrUnauthorized
	}
	if req.Empty() {
		return nil, models.ErrorBadRequest{Message: msgNoUpdate}
	}

	fields := map[string]interface{}{}

	if req.Title != nil {
		exists, err := s.docRepo.TitleExists(*req.Title, id)
		if err != nil {
			return nil, storeError(s.log, "document.title_exists", err, "", "")
		}
		if exists {
			return nil, models.ErrorConflict{Message: msgTitleTaken}
		}
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Access != nil {
		if !req.Access.Valid() {
			return nil, models.ErrorBadRequest{Message: "access must be public or private"}
		}
		fields["access"] = *req.Access
	}

	if err := s.docRepo.Update(doc, fields); err != nil {
		return nil, storeError(s.log, "document.update", err, msgDocumentNotFound, msgTitleTaken)
	}

	updated, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, storeError(s.log, "document.get", err, msgDocumentNotFound, "")
	}
	return updated, nil
}

func (s *documentService) DeleteDocument(id uint, caller models.Caller) error {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return storeError(s.log, "document.get", err, msgDocumentNotFound, "")
	}

	if !s.access.IsOwnerOrAdmin(caller, doc.OwnerID) {
		return models.ErrUnauthorized
	}

	if err := s.docRepo.Delete(id); err != nil {
		return storeError(s.log, "document.delete", err, msgDocumentNotFound, "")
	}
	return nil
}

func (s *documentService) SearchDocuments(term string, caller models.Caller, page helper.PageParams) ([]models.Document, int64, error) {
	term = helper.CleanSearchTerm(term)
	if term == "" {
		return nil, 0, models.ErrorBadRequest{Message: msgNoTerm}
	}

	filter := s.visibleTo(caller)
	filter.Pattern = helper.LikePattern(term)

	docs, total, err := s.docRepo.GetList(filter, page)
	if err != nil {
		return nil, 0, storeError(s.log, "document.search", err, "", "")
	}
	if total == 0 {
		return nil, 0, models.ErrorNotFound{Message: msgNoResult}
	}
	return docs, total, nil
}

// visibleTo limits non-admins to their own documents and public ones.
func (s *documentService) visibleTo(caller models.Caller) repositories.DocumentFilter {
	if s.access.IsAdmin(caller.RoleID) {
		return repositories.DocumentFilter{}
	}
	return repositories.DocumentFilter{VisibleTo: caller.UserID}
}
