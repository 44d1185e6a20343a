package uuid

import "github.com/google/uuid"

func New() string {
	v, err := uuid.NewRandom()
	if err != nil {
		return New()
	}
	return v.String()
}
