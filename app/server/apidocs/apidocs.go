// Package apidocs serves a browsable reference for the API next to the
// OpenAPI document it is rendered from.
package apidocs

import (
	"bytes"
	"html/template"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

type config struct {
	SpecURL string // where the page loads the document from
}

func renderPage(cfg *config) []byte {
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, cfg)
	return buf.Bytes()
}

// Doc is a Pre middleware answering three paths: basePath redirects to the
// reference page at basePath/apidocs, which reads basePath/apispec.json.
// Everything else passes through.
func Doc(basePath string, specJSON []byte) echo.MiddlewareFunc {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}

	docPath := path.Join(basePath, "apidocs")
	page := renderPage(cfg)

	routes := map[string]echo.HandlerFunc{
		basePath: func(c echo.Context) error {
			return c.Redirect(http.StatusFound, docPath)
		},
		docPath: func(c echo.Context) error {
			return c.HTMLBlob(http.StatusOK, page)
		},
		cfg.SpecURL: func(c echo.Context) error {
			return c.JSONBlob(http.StatusOK, specJSON)
		},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			handler, ok := routes[c.Request().URL.Path]
			if !ok || c.Request().Method != http.MethodGet {
				return next(c)
			}
			return handler(c)
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Library and articles API</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
