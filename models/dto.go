package models

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=Username"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	RoleID uint   `json:"roleId"`
	Token  string `json:"token"`
}

// UpdateUserRequest carries only the fields a caller may change; an "id" in
// the payload has nowhere to land and is dropped by the decoder.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	Firstname *string `json:"firstname" validate:"omitempty,min=1"`
	Lastname  *string `json:"lastname" validate:"omitempty,min=1"`
	RoleID    *uint   `json:"roleId" validate:"omitempty,min=1"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil &&
		r.Firstname == nil && r.Lastname == nil && r.RoleID == nil
}

type CreateDocumentRequest struct {
	Title   string         `json:"title" validate:"required,max=255"`
	Content string         `json:"content" validate:"required"`
	Access  DocumentAccess `json:"access" validate:"omitempty,oneof=public private"`
}

type UpdateDocumentRequest struct {
	Title   *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string         `json:"content" validate:"omitempty,min=1"`
	Access  *DocumentAccess `json:"access" validate:"omitempty,oneof=public private"`
}

func (r UpdateDocumentRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Access == nil
}

type RoleRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type LogoutRequest struct {
	Token string `json:"token" form:"token"`
}
