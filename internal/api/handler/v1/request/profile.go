package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type UpdateProfileRequest struct {
	FullName     *string              `json:"full_name,omitempty"`
	TekxPosition *domain.TekxPosition `json:"tekx_position,omitempty"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&req.TekxPosition, validation.By(validTekxPosition)),
	)
}

func (req *UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:     req.FullName,
		TekxPosition: req.TekxPosition,
	}
}

type CreateAdminUserRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

func (req *CreateAdminUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Role, validation.Required, validation.In(domain.RoleAdmin, domain.RoleSuperAdmin)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateAdminUserRequest struct {
	FullName     *string              `json:"full_name,omitempty"`
	Role         *domain.Role         `json:"role,omitempty"`
	TekxPosition *domain.TekxPosition `json:"tekx_position,omitempty"`
}

func (req *UpdateAdminUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&req.Role, validation.By(func(value interface{}) error {
			r, _ := value.(*domain.Role)
			if r != nil && !r.Valid() {
				return errors.New("must be student, admin or super_admin")
			}
			return nil
		})),
		validation.Field(&req.TekxPosition, validation.By(validTekxPosition)),
	)
}

func (req *UpdateAdminUserRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:     req.FullName,
		Role:         req.Role,
		TekxPosition: req.TekxPosition,
	}
}
