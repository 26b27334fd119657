package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	CreateBarber(ctx context.Context, req CreateBarberRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateDeductionPercentage(ctx context.Context, req UpdateDeductionPercentageRequest) error
}
