package api

import (
	"fmt"
	"html/template"

	"github.com/terraincognita07/skinsight/web"
)

func parsePageTemplates(funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(
			web.Templates,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func parsePartialTemplates(funcMap template.FuncMap, partialNames []string) (map[string]*template.Template, error) {
	partials := make(map[string]*template.Template, len(partialNames))
	for _, name := range partialNames {
		parsed, err := template.New(name).Funcs(funcMap).ParseFS(web.Templates, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", name, err)
		}
		partials[name] = parsed
	}
	return partials, nil
}
