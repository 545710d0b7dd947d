package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"phoneflip/pkg/models"
)

// MemoryRepo is an in-memory Repository. It backs tests and gives the
// pipeline a catalog fake with the same (nil, nil) not-found contract
// as the Mongo implementation.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]*models.PhoneSpec
	order []string // insertion order, for deterministic listing
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]*models.PhoneSpec)}
}

func (r *MemoryRepo) FindByIdentity(ctx context.Context, brand, model string) (*models.PhoneSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		s := r.byID[id]
		if s.Brand == brand && s.Model == model {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, spec *models.PhoneSpec) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	spec.CreatedAt = now
	spec.UpdatedAt = now

	id := spec.ID.Hex()
	cp := *spec
	r.byID[id] = &cp
	r.order = append(r.order, id)
	return id, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, spec *models.PhoneSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("spec not found")
	}

	replacement := *spec
	replacement.ID = existing.ID
	replacement.Brand = existing.Brand
	replacement.Model = existing.Model
	replacement.CreatedAt = existing.CreatedAt
	replacement.UpdatedAt = time.Now().UTC()
	r.byID[id] = &replacement
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*models.PhoneSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]models.PhoneSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PhoneSpec, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		if q.Brand != "" && !strings.EqualFold(s.Brand, q.Brand) {
			continue
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Brand != out[j].Brand {
			return out[i].Brand < out[j].Brand
		}
		return out[i].Model < out[j].Model
	})

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
