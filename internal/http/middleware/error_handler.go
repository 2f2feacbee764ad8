package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/interface/http/response"
	"github.com/ignatzorin/docexchange-backend/internal/logger"
	"github.com/ignatzorin/docexchange-backend/internal/pkg/apperror"
)

// ErrorHandler логирует ошибки, прикреплённые к контексту, и отвечает 500, если ответ ещё не записан.
// Клиент видит только код и сообщение AppError, текст внутренних ошибок остаётся в логе.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				logger.WithFields(logrus.Fields{
					"panic":  p,
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("паника при обработке запроса")
				if !c.Writer.Written() {
					response.Error(c, apperror.New(apperror.ErrCodeInternal, "внутренняя ошибка сервера"))
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			logger.WithFields(logrus.Fields{
				"error":  e.Error(),
				"code":   apperror.CodeOf(e.Err),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": c.Writer.Status(),
			}).Error("ошибка запроса")
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Success: false,
				Error:   &response.ErrorInfo{Code: string(apperror.ErrCodeInternal), Message: "внутренняя ошибка сервера"},
			})
		}
	}
}
