package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Patient struct {
	Base
	Name    string  `db:"name" json:"name"`
	DOB     *Date   `db:"dob" json:"dob"`
	Gender  Gender  `db:"gender" json:"gender"`
	Phone   *string `db:"phone" json:"phone"`
	Email   *string `db:"email" json:"email"`
	Address *string `db:"address" json:"address"`
}

type CreatePatientRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=150"`
	DOB     *string `json:"dob"`
	Gender  *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,max=120"`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

type PatientFilters struct {
	Name string
}

func (r *CreatePatientRequest) Validate() (*Patient, error) {
	if !present(r.Name) {
		return nil, apperrors.Validation("name is required")
	}

	p := &Patient{
		Name:    *r.Name,
		Gender:  GenderMale,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}

	if present(r.DOB) {
		dob, err := ParseDate(*r.DOB)
		if err != nil {
			return nil, apperrors.NewBadRequest("dob must be ISO date YYYY-MM-DD", err)
		}
		p.DOB = &dob
	}
	if present(r.Gender) {
		p.Gender = Gender(*r.Gender)
	}

	return p, nil
}
