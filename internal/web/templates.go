package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Имена страниц совпадают с файлами в templates/
const (
	pageProjects = "projects.html"
	pageProject  = "project.html"
	pageLogin    = "login.html"
)

// parseTemplates собирает для каждой страницы отдельный набор: layout + страница.
// Каждая страница определяет свой блок "content", поэтому наборы не смешиваются.
func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{pageProjects, pageProject, pageLogin}
	set := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		set[page] = tmpl
	}
	return set, nil
}
