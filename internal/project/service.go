package project

import (
	"strings"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
)

// Folder is the blob-store folder project images live in.
const Folder = "projects"

// NewLifecycle wires the project lifecycle manager.
func NewLifecycle(repo resource.Repository[*Project], resolver *attachment.Resolver) *resource.Lifecycle[*Project] {
	desc := resource.Descriptor{
		Kind:        "project",
		Folder:      Folder,
		Constraints: resource.ImageConstraints,
	}
	return resource.NewLifecycle(repo, resolver, desc, validate)
}

func validate(p *Project) []string {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(p.Description) == "" {
		missing = append(missing, "description")
	}
	return missing
}
