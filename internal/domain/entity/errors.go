package entity

import "errors"

var (
	// ErrNoFace лицо на кадре не найдено. Это штатный исход, а не сбой.
	ErrNoFace = errors.New("no face found")

	ErrUnknownTopology = errors.New("unknown landmark topology")
	ErrLandmarkCount   = errors.New("not enough landmarks for topology")
	ErrLandmarkRange   = errors.New("landmark outside normalized [0,1] range")
	ErrScanInProgress  = errors.New("scan already in progress")
	ErrBadImage        = errors.New("cannot decode image")
)
