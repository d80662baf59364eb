// Command webhook_send posts a JSON document to a webhook receiver.
//
//	webhook_send [file]
//
// The document is read from file, or from stdin when no file is given.
// The target is WEBHOOK_URL (default http://localhost:8000/webhook).
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"webhook-receiver/internal/config"
	"webhook-receiver/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(config.GetLogLevel())

	var in io.Reader = os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			logger.WithError(err).Fatal("failed to open payload file")
		}
		defer f.Close()
		in = f
	}

	body, err := io.ReadAll(in)
	if err != nil {
		logger.WithError(err).Fatal("failed to read payload")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	url := config.GetSenderURL()
	sender := service.NewHTTPSender(url, logger)
	if err := sender.Send(ctx, body); err != nil {
		logger.WithError(err).Fatal("failed to send webhook")
	}

	logger.WithFields(logrus.Fields{"url": url, "bytes": len(body)}).Info("webhook sent")
}
