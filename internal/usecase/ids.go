package usecase

import (
	"strconv"

	"github.com/google/uuid"
)

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// cart idはUUID。形式が違えばDBに問い合わせない。
func validCartID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
