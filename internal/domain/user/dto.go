// internal/domain/user/dto.go
package user

// RegisterRequest is the multipart registration form. The resume file is
// read separately from the same form.
type RegisterRequest struct {
	Name        string `form:"name" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Phone       string `form:"phone" binding:"required"`
	Address     string `form:"address" binding:"required"`
	Password    string `form:"password" binding:"required,min=8,max=32"`
	Role        string `form:"role" binding:"required"`
	FirstNiche  string `form:"firstNiche"`
	SecondNiche string `form:"secondNiche"`
	ThirdNiche  string `form:"thirdNiche"`
	CoverLetter string `form:"coverLetter"`
}

// Niches returns the non-empty niches in order.
func (r *RegisterRequest) Niches() []string {
	var niches []string
	for _, n := range []string{r.FirstNiche, r.SecondNiche, r.ThirdNiche} {
		if n != "" {
			niches = append(niches, n)
		}
	}
	return niches
}

// LoginRequest for user login
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required"`
	IPAddress string `json:"-"`
}

// AuthResponse is returned by register and login alongside the cookie.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
