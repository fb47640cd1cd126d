package handlers

import (
	"docman/helper"
	"docman/models"
	"docman/services"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService services.DocumentService
	Helper          *helper.HTTPHelper
}

func NewDocumentHandler(documentService services.DocumentService, h *helper.HTTPHelper) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, Helper: h}
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}

	var req models.CreateDocumentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	doc, err := h.documentService.CreateDocument(req, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "document created", doc)
}

func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	page, ok := pageParams(c, h.Helper)
	if !ok {
		return
	}

	docs, total, err := h.documentService.GetDocuments(who, page)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPage(c, "documents retrieved", docs, helper.DeriveMeta(total, page))
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(id, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "document retrieved", doc)
}

func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateDocumentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	doc, err := h.documentService.UpdateDocument(id, req, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "document updated", doc)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(id, who); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "document deleted", nil)
}

func (h *DocumentHandler) SearchDocuments(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	page, ok := pageParams(c, h.Helper)
	if !ok {
		return
	}

	docs, total, err := h.documentService.SearchDocuments(searchTerm(c), who, page)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPage(c, "search results", docs, helper.DeriveMeta(total, page))
}
