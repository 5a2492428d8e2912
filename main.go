package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/FolioForge/portfolio-backend/internal/auth"
	"github.com/FolioForge/portfolio-backend/internal/content"
	"github.com/FolioForge/portfolio-backend/internal/db"
	"github.com/FolioForge/portfolio-backend/internal/middleware"
	"github.com/FolioForge/portfolio-backend/internal/settings"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

// loginLimiter reads LOGIN_RATE (requests/sec) and LOGIN_BURST from the
// environment, defaulting to 1 req/s with a burst of 5 per IP.
func loginLimiter() *middleware.IPRateLimiter {
	r := rate.Limit(1)
	if s := os.Getenv("LOGIN_RATE"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			r = rate.Limit(f)
		}
	}
	burst := 5
	if s := os.Getenv("LOGIN_BURST"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			burst = n
		}
	}
	return middleware.NewIPRateLimiter(r, burst)
}

func main() {
	_ = godotenv.Load(".env.local")
	gdb := db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init(gdb)
	content.Init(gdb)
	settings.Init(gdb)

	cfg := auth.LoadConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid auth config: ", err)
	}

	store := auth.NewStore(gdb)
	service := auth.NewService(store, store, auth.NewHasher(cfg.BcryptCost), cfg)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/api/auth", auth.SetupRoutes(auth.NewHandler(service), service, loginLimiter()))
	r.Mount("/api/settings", settings.SetupRoutes(settings.NewHandler(gdb), service))
	r.Mount("/api", content.SetupRoutes(content.NewHandler(gdb), service))

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
