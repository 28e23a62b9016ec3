package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/swaggo/swag"

	// registers the generated OpenAPI document with swag
	_ "github.com/conduit-demo/app/internal/docs"
)

// HandleOpenAPISpec serves the OpenAPI document generated by swag (see internal/docs).
func HandleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "Failed to read API docs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

// HandleDocsUI serves the Scalar API reference page, which loads the document from specURL.
func HandleDocsUI(specURL string) http.HandlerFunc {
	page := fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <title>conduit-server API</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="%s"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>
`, html.EscapeString(specURL))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}
}
