package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"eduquiz-web/internal/domain"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// NewEngine builds the HTML view engine over the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded views: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("optionLabel", domain.OptionLabel)

	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}
	return engine, nil
}
