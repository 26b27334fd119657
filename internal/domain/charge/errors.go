package charge

import "errors"

var ErrAdminChargeNotFound = errors.New("admin charge not found")
