package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/logging"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/profile"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/rewarder"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/server"
)

// #region main

func main() {
	addr := flag.String("addr", envOr("VERIFIER_ADDR", ":8080"), "listen address")
	profilePath := flag.String("profile", envOr("VERIFIER_PROFILE", ""), "path to profile YAML (empty = default profile)")
	scoreLogPath := flag.String("score-log", envOr("VERIFIER_SCORE_LOG", ""), "append score records as JSONL (empty = disabled)")
	flag.Parse()

	p := profile.Default()
	if *profilePath != "" {
		loaded, err := profile.LoadFile(*profilePath)
		if err != nil {
			log.Fatalf("load profile: %v", err)
		}
		p = loaded
	}

	rw, err := rewarder.New(p, nil)
	if err != nil {
		log.Fatalf("resolve constraints: %v", err)
	}

	var scoreLog *logging.Logger
	if *scoreLogPath != "" {
		f, err := os.OpenFile(*scoreLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open score log: %v", err)
		}
		defer f.Close()
		scoreLog = logging.NewLogger(f)
	}

	srv := server.New(rw, scoreLog)
	log.Printf("dietary verifier listening on %s (%d active constraints)", *addr, len(rw.Active()))
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
