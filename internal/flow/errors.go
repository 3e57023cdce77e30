package flow

import "errors"

var (
	ErrUnknownMovie    = errors.New("movie not found")
	ErrUnknownTime     = errors.New("show time not offered by the selected movie")
	ErrUnknownTheater  = errors.New("theater not found")
	ErrUnknownItem     = errors.New("menu item not found")
	ErrUnknownModifier = errors.New("modifier not defined for this item")
	ErrUnknownLine     = errors.New("cart line not found")
	ErrUnknownCategory = errors.New("unknown headcount category")
	ErrInvalidChannel  = errors.New("unknown payment channel")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
