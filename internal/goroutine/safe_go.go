// Package goroutine запускает фоновые задачи так, чтобы паника не роняла процесс.
package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/docexchange-backend/internal/logger"
)

// Go запускает fn в отдельной горутине. Паника логируется вместе со стеком, name попадает в поле task.
func Go(ctx context.Context, name string, fn func(context.Context)) {
	go Run(ctx, name, fn)
}

// Run выполняет fn в текущей горутине с перехватом паники. Возвращает true, если fn завершилась штатно.
func Run(ctx context.Context, name string, fn func(context.Context)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"task":  name,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("паника в фоновой задаче")
			ok = false
		}
	}()
	fn(ctx)
	return true
}
