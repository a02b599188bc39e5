package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
)

// Generator issues random (v4) ids for every stored entity.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
