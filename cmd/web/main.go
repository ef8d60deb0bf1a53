package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/valentine-dash/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	settings := config.Load()
	logger := config.NewLogger(os.Stderr, settings.LogLevel, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	wasmDir := config.GetEnv("VD_WASM_DIR", "")

	playLink := ""
	mux := http.NewServeMux()
	if wasmDir != "" {
		// A GOOS=js build of cmd/desktop with its wasm_exec.js and loader page.
		mux.Handle("/play/", http.StripPrefix("/play/", http.FileServer(http.Dir(wasmDir))))
		playLink = `<p class="play"><a href="/play/">Play in your browser</a></p>`
		logger.Info("serving browser build", "dir", wasmDir)
	}

	page := strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.PlayLink}}", playLink,
	).Replace(htmlPage)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
