package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Stroke practice sheets</title></head>
<body>
    <form action="/gen" method="post">
        <p>Characters: <input type="text" name="chars" value="{{.Characters}}"/></p>
        <p>Size: <input type="text" name="size" value="{{.CellSize}}"/></p>
        <p>Seed: <input type="text" name="seed" value=""/></p>
        <input type="submit">
    </form>
</body>
</html>
`))

type indexData struct {
	Characters string
	CellSize   int
}

// Index serves the sheet request form.
func (h *SheetHandler) Index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	_ = indexTemplate.Execute(c.Writer, indexData{Characters: h.formCharacters, CellSize: h.defaultCellSize})
}
