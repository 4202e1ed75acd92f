package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Repository interface {
	Save(ctx context.Context, employee *Employee) (*Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetByName(ctx context.Context, firstName, lastName string) (*Employee, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{
		db: db,
	}
}

// Save inserts when the employee has no id yet, updates otherwise.
// The insert returns the row so the generated id is populated.
func (r *repository) Save(ctx context.Context, employee *Employee) (*Employee, error) {
	if employee.ID == 0 {
		_, err := r.db.NewInsert().Model(employee).Returning("*").Exec(ctx)
		if err != nil {
			return nil, translateError(err)
		}
		return employee, nil
	}

	_, err := r.db.NewUpdate().Model(employee).WherePK().Exec(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return employee, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.NewSelect().Model(&employees).Scan(ctx)
	return employees, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Employee, error) {
	employee := new(Employee)
	err := r.db.NewSelect().Model(employee).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	employee := new(Employee)
	err := r.db.NewSelect().
		Model(employee).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// GetByName is an exact-match lookup. When several employees share the same
// name it returns one row in storage order.
func (r *repository) GetByName(ctx context.Context, firstName, lastName string) (*Employee, error) {
	employee := new(Employee)
	err := r.db.NewSelect().
		Model(employee).
		Where("first_name = ?", firstName).
		Where("last_name = ?", lastName).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// Delete removes the row if it exists. Deleting an absent id is not an error.
func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.NewDelete().Model((*Employee)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// translateError maps the unique-constraint violation on employees.email to
// ErrDuplicateEmail so concurrent creates lose the race cleanly instead of
// surfacing a raw driver error.
func translateError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return ErrDuplicateEmail
	}
	return err
}
