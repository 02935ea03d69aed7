package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postboard/postboard/internal/apperr"
	"github.com/postboard/postboard/pkg/logger"
	"go.uber.org/zap"
)

// statusForKind is the single place where error kinds become status codes.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalid, apperr.KindDuplicate, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Internal causes are
// logged server-side; the client only ever sees the taxonomy message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.Log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}
	c.JSON(statusForKind(kind), gin.H{
		"ok":      false,
		"message": apperr.MessageOf(err),
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"ok":   true,
		"data": data,
	})
}
