package service

import (
	"context"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

// OptionService manages the durable department and automation potential
// option sets. Every method returns the sets as stored afterwards.
type OptionService interface {
	Get(ctx context.Context) (domain.OptionSets, error)
	Add(ctx context.Context, cat domain.OptionCategory, value string) (domain.OptionSets, error)
	Remove(ctx context.Context, cat domain.OptionCategory, value string) (domain.OptionSets, error)
	Replace(ctx context.Context, cat domain.OptionCategory, values []string) (domain.OptionSets, error)
	Reset(ctx context.Context) (domain.OptionSets, error)
}
