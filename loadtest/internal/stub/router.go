package stub

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(storage *EquipmentStorage) *gin.Engine {
	h := NewHandler(storage)

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/stub/seed", h.HandleSeed)
	r.POST("/stub/reset", h.HandleReset)
	r.GET("/api/v1/equipment", h.HandleListEquipment)

	return r
}
