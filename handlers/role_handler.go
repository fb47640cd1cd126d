package handlers

import (
	"docman/helper"
	"docman/models"
	"docman/services"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService services.RoleService
	Helper      *helper.HTTPHelper
}

func NewRoleHandler(roleService services.RoleService, h *helper.HTTPHelper) *RoleHandler {
	return &RoleHandler{roleService: roleService, Helper: h}
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}

	var req models.RoleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	role, err := h.roleService.CreateRole(req, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "role created", role)
}

func (h *RoleHandler) GetRoles(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}

	roles, err := h.roleService.GetRoles(who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "roles retrieved", roles)
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(id, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "role retrieved", role)
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.RoleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	role, err := h.roleService.UpdateRole(id, req, who)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "role updated", role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	who, ok := caller(c, h.Helper)
	if !ok {
		return
	}
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(id, who); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "role deleted", nil)
}
