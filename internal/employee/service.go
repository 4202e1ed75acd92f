package employee

import (
	"context"
	"errors"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateEmail   = errors.New("employee email already exists")
	ErrInvalidInput     = errors.New("invalid input")
)

type Service interface {
	CreateEmployee(ctx context.Context, employee *Employee) (*Employee, error)
	GetAllEmployees(ctx context.Context) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id int) (*Employee, error)
	UpdateEmployee(ctx context.Context, id int, patch *Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

type service struct {
	repo   Repository
	events *Events
}

func NewService(repo Repository, events *Events) Service {
	return &service{
		repo:   repo,
		events: events,
	}
}

func (s *service) CreateEmployee(ctx context.Context, employee *Employee) (*Employee, error) {
	_, err := s.repo.GetByEmail(ctx, employee.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrEmployeeNotFound) {
		return nil, err
	}

	created, err := s.repo.Save(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, EventCreated, created)
	return created, nil
}

func (s *service) GetAllEmployees(ctx context.Context) ([]Employee, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetEmployeeByID(ctx context.Context, id int) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateEmployee overwrites first name, last name and email of an existing
// employee. The id is never overwritten. A missing id performs no write.
func (s *service) UpdateEmployee(ctx context.Context, id int, patch *Employee) (*Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	employee.FirstName = patch.FirstName
	employee.LastName = patch.LastName
	employee.Email = patch.Email

	updated, err := s.repo.Save(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, EventUpdated, updated)
	return updated, nil
}

// DeleteEmployee succeeds whether or not the id exists.
func (s *service) DeleteEmployee(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(ctx, EventDeleted, &Employee{ID: id})
	return nil
}
