package store

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
	Jobs         []Job   `json:"jobs,omitempty"`
}

type NewCompany struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int64
	LogoURL      *string
}

type User struct {
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	IsAdmin   bool     `json:"isAdmin"`
	Jobs      []string `json:"jobs,omitempty"` // id вакансий, на которые откликнулся
}

type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// Equity хранится как numeric и отдаётся строкой, без потери точности.
type Job struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Salary        *int64  `json:"salary"`
	Equity        *string `json:"equity"`
	CompanyHandle string  `json:"companyHandle"`
}

type NewJob struct {
	Title         string
	Salary        *int64
	Equity        *float64
	CompanyHandle string
}
