package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Doctor struct {
	Base
	Name          string  `db:"name" json:"name"`
	DepartmentID  *int64  `db:"department_id" json:"department_id"`
	Qualification *string `db:"qualification" json:"qualification"`
	Phone         *string `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email"`
}

type CreateDoctorRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=150"`
	DepartmentID  *int64  `json:"department_id"`
	Qualification *string `json:"qualification" binding:"omitempty,max=150"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,max=120"`
}

func (r *CreateDoctorRequest) Validate() (*Doctor, error) {
	if !present(r.Name) {
		return nil, apperrors.Validation("name required")
	}
	d := &Doctor{
		Name:          *r.Name,
		Qualification: r.Qualification,
		Phone:         r.Phone,
		Email:         r.Email,
	}
	if presentID(r.DepartmentID) {
		d.DepartmentID = r.DepartmentID
	}
	return d, nil
}
