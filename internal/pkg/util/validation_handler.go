package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 按 validate 标签校验，原样返回 validator.ValidationErrors，
// 由响应层统一折算成 INVALID_REQUEST
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
