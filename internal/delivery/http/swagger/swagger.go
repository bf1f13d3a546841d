package http_swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const DefaultDocURL = "/api/swagger/doc.json"

// Controller serves the swag UI. The document itself is produced by
// `swag init -g cmd/app/main.go` and registered by the generated package.
type Controller struct {
	docURL string
}

func New(docURL string) *Controller {
	if docURL == "" {
		docURL = DefaultDocURL
	}
	return &Controller{docURL: docURL}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(c.docURL),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}
