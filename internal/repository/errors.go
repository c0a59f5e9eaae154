package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// 一意制約違反
	ErrConflict = errors.New("conflict")

	// 外部キー制約(RESTRICT)で削除できない
	ErrProtected = errors.New("protected by related rows")
)
