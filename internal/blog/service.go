package blog

import (
	"strings"
	"time"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
)

// Folder is the blob-store folder blog images live in.
const Folder = "blog"

// PageSize is the fixed blog list page size.
const PageSize = 6

// NewLifecycle wires the blog post lifecycle manager.
func NewLifecycle(repo resource.Repository[*Post], resolver *attachment.Resolver) *resource.Lifecycle[*Post] {
	desc := resource.Descriptor{
		Kind:        "blog post",
		Folder:      Folder,
		Constraints: resource.ImageConstraints,
	}
	return resource.NewLifecycle(repo, resolver, desc, validate)
}

func validate(p *Post) []string {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Category) == "" {
		missing = append(missing, "category")
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(p.Description) == "" {
		missing = append(missing, "description")
	}
	return missing
}

// TotalPages computes the page count for the fixed page size.
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}
