package service

import (
	"sort"

	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

var _ output.ProfileRegistry = (*ProfileRegistryImpl)(nil)

type ProfileRegistryImpl struct {
	profiles map[entity.Surface]entity.AgentProfile
}

func NewProfileRegistry() *ProfileRegistryImpl {
	return &ProfileRegistryImpl{
		profiles: make(map[entity.Surface]entity.AgentProfile),
	}
}

func (r *ProfileRegistryImpl) Register(surface entity.Surface, profile entity.AgentProfile) {
	r.profiles[surface] = profile
}

func (r *ProfileRegistryImpl) Get(surface entity.Surface) (entity.AgentProfile, bool) {
	profile, ok := r.profiles[surface]
	return profile, ok
}

func (r *ProfileRegistryImpl) List() []entity.Surface {
	result := make([]entity.Surface, 0, len(r.profiles))
	for surface := range r.profiles {
		result = append(result, surface)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}
