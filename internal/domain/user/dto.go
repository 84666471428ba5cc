package user

// SignupRequest carries the registration form fields.
type SignupRequest struct {
	Username string `form:"username" binding:"required,min=3,max=32"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
