package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(alerts *AlertHandler, reconcile *ReconcileHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	if alerts != nil {
		api.GET("/alerts", alerts.HandleListUnread)
		api.GET("/alerts/all", alerts.HandleListAll)
		api.PUT("/alerts/read-all", alerts.HandleMarkAllRead)
		api.GET("/alerts/:id", alerts.HandleGet)
		api.PUT("/alerts/:id/read", alerts.HandleMarkRead)
	}
	if reconcile != nil {
		api.POST("/reconcile", reconcile.HandleReconcile)
	}
	return router
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
