package application

import (
	"fmt"
	"strings"

	"github.com/bnema/yamcl/internal/domain"
)

// FindInstance looks an instance up by id first, then by case-insensitive name.
func FindInstance(instances []domain.Instance, ref string) (domain.Instance, error) {
	ref = strings.TrimSpace(ref)
	for _, instance := range instances {
		if instance.ID != "" && instance.ID == ref {
			return instance, nil
		}
	}

	var matches []domain.Instance
	for _, instance := range instances {
		if strings.EqualFold(instance.Name, ref) {
			matches = append(matches, instance)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Instance{}, fmt.Errorf("%w: %q", domain.ErrInstanceNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Instance{}, fmt.Errorf("instance name %q is ambiguous, use one of the ids: %s", ref, joinIDs(matches))
	}
}

func joinIDs(instances []domain.Instance) string {
	ids := make([]string, 0, len(instances))
	for _, instance := range instances {
		ids = append(ids, instance.ID)
	}

	return strings.Join(ids, ", ")
}
