package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	fodmapdb "github.com/jfranmatheu/EverydayFODMAP-sub001"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := pflag.Int("port", 7311, "TCP port to listen on")
	baseDir := pflag.String("dir", "", "Directory for the database file (memory store when empty)")
	useGit := pflag.Bool("git", false, "Commit every save to a git repository under --dir")
	jwtSecret := pflag.String("jwt-secret", "", "Enable JWT auth with this HS256 shared secret")
	jwtIssuer := pflag.String("jwt-issuer", "", "Expected iss claim (optional)")
	jwtAudience := pflag.String("jwt-audience", "", "Expected aud claim (optional)")
	showVersion := pflag.Bool("version", false, "Show version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("fodmapdb server v%s\n", Version)
		return
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var blob ps.BlobStore
	switch {
	case *baseDir == "":
		log.Info("using memory store")
		blob = ps.NewMemoryBlobStore()
	case *useGit:
		log.Info("using git store", zap.String("dir", *baseDir))
		blob, err = ps.NewGitBlobStore(*baseDir, ps.Identity{
			Name:  "fodmapdb server",
			Email: "server@fodmapdb.local",
		})
	default:
		log.Info("using file store", zap.String("dir", *baseDir))
		blob, err = ps.NewFileBlobStore(*baseDir)
	}
	if err != nil {
		log.Fatal("failed to initialize blob store", zap.Error(err))
	}

	instance := fodmapdb.Open(blob, log)

	var authConfig *AuthConfig
	if *jwtSecret != "" {
		authConfig = &AuthConfig{
			Enabled:   true,
			JWTSecret: *jwtSecret,
			Issuer:    *jwtIssuer,
			Audience:  *jwtAudience,
		}
		log.Info("JWT authentication enabled")
	}

	server := NewServer(instance, authConfig, log)
	addr := fmt.Sprintf(":%d", *port)
	if err := server.Start(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   fodmapdb server v%-18s ║\n", Version)
	fmt.Println("║   Diet-diary data layer over TCP      ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println(`Send JSON requests (one per line), e.g. {"op":"all","query":"SELECT * FROM meals"}`)
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	server.Stop()
	log.Info("server stopped")
}
