package main

import (
	"log"
	"net/http"

	"paperforge/internal/api"
	"paperforge/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("paperforge api listening on %s llm_providers=%q runs_backend=%q compile_strategies=%q",
		cfg.APIAddr, cfg.LLMProviders, cfg.RunsBackend, cfg.CompileStrategies)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
