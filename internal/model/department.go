package model

import (
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Department struct {
	Base
	Name     string  `db:"name" json:"name"`
	Location *string `db:"location" json:"location"`
}

type CreateDepartmentRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Location *string `json:"location" binding:"omitempty,max=100"`
}

func (r *CreateDepartmentRequest) Validate() (*Department, error) {
	if !present(r.Name) {
		return nil, apperrors.Validation("name required")
	}
	return &Department{Name: *r.Name, Location: r.Location}, nil
}
