package repository

import "errors"

var errNoRowReturned = errors.New("statement returned no row")
