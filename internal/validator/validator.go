package validator

import (
	"github.com/go-playground/validator/v10"
)

// echoのe.Validatorに挿す薄いラッパ
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
