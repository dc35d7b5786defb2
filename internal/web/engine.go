package web

import (
	"github.com/gin-gonic/gin"
)

// NewEngine returns a gin engine with templates, middleware and the 404
// handler installed. Services add their own routes on top.
func NewEngine(pages *Pages) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		Recovery(),
		RequestID(),
		Logger(),
	)
	r.NoRoute(pages.NotFound)

	return r, nil
}
