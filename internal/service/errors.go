package service

import "errors"

var (
	ErrInvalidSession   = errors.New("invalid cart session")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrProductInvalid   = errors.New("invalid product")
	ErrProductPatchNone = errors.New("no fields to update")
	ErrProductNotSaved  = errors.New("product not saved")
)
