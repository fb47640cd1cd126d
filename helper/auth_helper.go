package helper

import "docman/models"

// AccessControl answers the owner-or-admin questions every controller asks.
type AccessControl struct {
	AdminRoleID uint
}

func NewAccessControl(adminRoleID uint) AccessControl {
	return AccessControl{AdminRoleID: adminRoleID}
}

func (a AccessControl) IsAdmin(roleID uint) bool {
	return roleID == a.AdminRoleID
}

func (a AccessControl) IsOwnerOrAdmin(caller models.Caller, ownerID uint) bool {
	return a.IsAdmin(caller.RoleID) || caller.UserID == ownerID
}

// CanReadDocument also lets anyone read a public document.
func (a AccessControl) CanReadDocument(caller models.Caller, doc *models.Document) bool {
	return a.IsOwnerOrAdmin(caller, doc.OwnerID) || doc.Access == models.AccessPublic
}
