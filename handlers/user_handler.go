package handlers

import (
	"docman/helper"
	"docman/models"
	"docman/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: h}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	page, ok := pageParams(c, h.Helper)
	if !ok {
		return
	}

	users, total, err := h.userService.GetUsers(who, page)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPage(c, "users retrieved", users, helper.DeriveMeta(total, page))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(id, req, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id, who); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "user deleted", nil)
}

func (h *UserHandler) GetUserDocuments(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}
	page, ok := pageParams(c, h.Helper)
	if !ok {
		return
	}

	docs, total, err := h.userService.GetUserDocuments(id, who, page)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPage(c, "documents retrieved", docs, helper.DeriveMeta(total, page))
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	page, ok := pageParams(c, h.Helper)
	if !ok {
		return
	}

	users, total, err := h.userService.SearchUsers(searchTerm(c), who, page)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendPage(c, "search results", users, helper.DeriveMeta(total, page))
}
