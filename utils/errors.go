package utils

import "github.com/pkg/errors"

var (
	NotFoundError = errors.New("NotFoundError")
)

func IsNotFound(err error) bool {
	return errors.Is(err, NotFoundError)
}
