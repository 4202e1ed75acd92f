package employee

import "github.com/uptrace/bun"

type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"firstName" validate:"required"`
	LastName  string `bun:"last_name,notnull" json:"lastName" validate:"required"`
	Email     string `bun:"email,unique,notnull" json:"email" validate:"required,email"`
}
