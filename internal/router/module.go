package router

import "github.com/gin-gonic/gin"

// Module is a self-contained route bundle. Each feature area implements
// Register to mount its endpoints on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
