package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/KasumiMercury/equipment-maintenance-alerts/loadtest/internal/stub"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	r := stub.NewRouter(stub.NewEquipmentStorage())

	slog.Info("starting equipment registry stub", slog.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("stub server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
