package dto

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin instructor student"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
