package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/capstonehub/internal/db"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/repository"
)

var (
	ErrLastOption      = errors.New("cannot remove the last option")
	ErrEmptyCategory   = errors.New("an option list cannot be empty")
	ErrBlankOption     = errors.New("option value cannot be blank")
	ErrDuplicateOption = errors.New("option already exists")
	ErrOptionNotFound  = errors.New("option not found")
)

type optionService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewOptionService(uow db.UnitOfWork, observers ...UseCaseObserver) OptionService {
	return &optionService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *optionService) Get(ctx context.Context) (domain.OptionSets, error) {
	var sets domain.OptionSets
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		sets, err = load(ctx, repository.NewSQLiteKVRepo(tx))
		return err
	})
	return sets, err
}

func (s *optionService) Add(ctx context.Context, cat domain.OptionCategory, value string) (domain.OptionSets, error) {
	value = strings.TrimSpace(value)
	return s.update(ctx, "add-option", cat, func(vals []string) ([]string, error) {
		if value == "" {
			return nil, ErrBlankOption
		}
		if containsFold(vals, value) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOption, value)
		}
		return append(vals, value), nil
	})
}

func (s *optionService) Remove(ctx context.Context, cat domain.OptionCategory, value string) (domain.OptionSets, error) {
	value = strings.TrimSpace(value)
	return s.update(ctx, "remove-option", cat, func(vals []string) ([]string, error) {
		idx := slices.Index(vals, value)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrOptionNotFound, value)
		}
		if len(vals) == 1 {
			return nil, ErrLastOption
		}
		return slices.Delete(vals, idx, idx+1), nil
	})
}

func (s *optionService) Replace(ctx context.Context, cat domain.OptionCategory, values []string) (domain.OptionSets, error) {
	return s.update(ctx, "replace-options", cat, func([]string) ([]string, error) {
		var out []string
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if containsFold(out, v) {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateOption, v)
			}
			out = append(out, v)
		}
		if len(out) == 0 {
			return nil, ErrEmptyCategory
		}
		return out, nil
	})
}

func (s *optionService) Reset(ctx context.Context) (sets domain.OptionSets, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "reset-options", startedAt, err, nil)
	}()

	sets = domain.DefaultOptionSets()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return save(ctx, repository.NewSQLiteKVRepo(tx), sets)
	})
	if err != nil {
		return domain.OptionSets{}, err
	}
	return sets, nil
}

// update runs a read-modify-write of one category in a single transaction.
// A rejected change leaves the stored sets untouched.
func (s *optionService) update(ctx context.Context, name string, cat domain.OptionCategory, fn func([]string) ([]string, error)) (sets domain.OptionSets, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, name, startedAt, err, map[string]any{"category": string(cat)})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		current, err := load(ctx, kv)
		if err != nil {
			return err
		}
		next, err := fn(current.Values(cat))
		if err != nil {
			return err
		}
		sets = current.With(cat, next)
		return save(ctx, kv, sets)
	})
	if err != nil {
		return domain.OptionSets{}, err
	}
	return sets, nil
}

// load reads the stored sets. Missing or unreadable data falls back to the
// defaults, and an empty stored list is replaced by its default list.
func load(ctx context.Context, kv repository.KVRepo) (domain.OptionSets, error) {
	defaults := domain.DefaultOptionSets()
	raw, err := kv.Get(ctx, domain.OptionsKey)
	if errors.Is(err, repository.ErrNotFound) {
		return defaults, nil
	}
	if err != nil {
		return domain.OptionSets{}, err
	}
	var sets domain.OptionSets
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return defaults, nil
	}
	if len(sets.Departments) == 0 {
		sets.Departments = defaults.Departments
	}
	if len(sets.AutomationPotential) == 0 {
		sets.AutomationPotential = defaults.AutomationPotential
	}
	return sets, nil
}

func save(ctx context.Context, kv repository.KVRepo, sets domain.OptionSets) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("encoding option sets: %w", err)
	}
	return kv.Set(ctx, domain.OptionsKey, string(data))
}

func containsFold(vals []string, v string) bool {
	return slices.ContainsFunc(vals, func(x string) bool { return strings.EqualFold(x, v) })
}
