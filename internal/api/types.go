package api

// request and responses for the /api/users endpoints.
// Bodies are wrapped in a "user" object, e.g. {"user": {"email": "...", "password": "..."}}

type RegisterRequest struct {
	User RegisterUser `json:"user"`
}

type RegisterUser struct {
	Username string `json:"username" example:"jake"`
	Email    string `json:"email" example:"jake@jake.jake"`
	Password string `json:"password" example:"jakejake"`
}

type LoginRequest struct {
	User LoginUser `json:"user"`
}

type LoginUser struct {
	Email    string `json:"email" example:"jake@jake.jake"`
	Password string `json:"password" example:"jakejake"`
}

// UpdateUserRequest: only the fields present are changed
type UpdateUserRequest struct {
	User UpdateUser `json:"user"`
}

type UpdateUser struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type UserResponse struct {
	User User `json:"user"`
}

type User struct {
	Email    string  `json:"email" example:"jake@jake.jake"`
	Token    string  `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
	Username string  `json:"username" example:"jake"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}
