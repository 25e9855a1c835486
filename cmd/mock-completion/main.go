// mock-completion runs the mock completion server: OpenAI-compatible
// endpoints backed by toy regex extraction, for exercising the audit pipeline
// without a GPU.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/mockllm"
)

func main() {
	log := logrus.New()

	addr := os.Getenv("MOCK_LLM_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8000"
	}

	srv := mockllm.NewServer(log, 500*time.Millisecond)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mockllm.NewRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.WithField("addr", addr).Info("mock completion server listening")

	if err := httpSrv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("mock completion server exited")
	}
}
