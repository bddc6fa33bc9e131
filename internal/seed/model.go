package seed

// Fixtures — начальные данные jobly из YAML.
type Fixtures struct {
	Companies []CompanyFixture `yaml:"companies"`
	Users     []UserFixture    `yaml:"users"`
}

type CompanyFixture struct {
	Handle       string       `yaml:"handle"`
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	NumEmployees *int64       `yaml:"numEmployees,omitempty"`
	LogoURL      *string      `yaml:"logoUrl,omitempty"`
	Jobs         []JobFixture `yaml:"jobs,omitempty"`
}

type JobFixture struct {
	Title  string   `yaml:"title"`
	Salary *int64   `yaml:"salary,omitempty"`
	Equity *float64 `yaml:"equity,omitempty"`
}

type UserFixture struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	IsAdmin   bool   `yaml:"isAdmin,omitempty"`
}
