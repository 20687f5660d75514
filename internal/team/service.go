package team

import (
	"strings"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
)

// Folder is the blob-store folder team member photos live in.
const Folder = "team"

// NewLifecycle wires the team member lifecycle manager.
func NewLifecycle(repo resource.Repository[*Member], resolver *attachment.Resolver) *resource.Lifecycle[*Member] {
	desc := resource.Descriptor{
		Kind:        "team member",
		Folder:      Folder,
		Constraints: resource.ImageConstraints,
	}
	return resource.NewLifecycle(repo, resolver, desc, validate)
}

func validate(m *Member) []string {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Position) == "" {
		missing = append(missing, "position")
	}
	return missing
}
