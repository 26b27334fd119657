package revenue

import "errors"

var (
	ErrSaleNotFound    = errors.New("sale not found")
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrInvalidPackage  = errors.New("invalid or inactive package")
)
