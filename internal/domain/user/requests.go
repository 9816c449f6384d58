package user

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// Empty reports whether the request carries no fields at all. An empty
// patch is rejected at the handler boundary.
func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Role == nil && r.Password == nil
}
