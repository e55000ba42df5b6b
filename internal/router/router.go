package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "med-care-tracker/docs"
	"med-care-tracker/internal/adapters/ai/gemini"
	mem "med-care-tracker/internal/adapters/storage/memory"
	pg "med-care-tracker/internal/adapters/storage/postgres"
	sq "med-care-tracker/internal/adapters/storage/sqlite"
	"med-care-tracker/internal/domain/care"
	"med-care-tracker/internal/middleware"
	"med-care-tracker/internal/platform/logger"
	"med-care-tracker/internal/ports/ai"
)

type Options struct {
	// Colaboradores de IA. Pueden venir nil: si hay GEMINI_API_KEY se arman
	// los adapters Gemini, si no quedan sin configurar (los endpoints que
	// los necesitan responden 503).
	Extractor ai.PrescriptionExtractor
	Checker   ai.InteractionChecker

	// Repo de snapshot. Si viene nil se resuelve por env:
	// DB_DSN => postgres, SQLITE_PATH => sqlite, si no => in-memory.
	Repo care.Repository

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	repo := opts.Repo
	if repo == nil {
		repo = repoFromEnv(log)
	}

	extractor := opts.Extractor
	checker := opts.Checker
	if extractor == nil || checker == nil {
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := gemini.NewClient(gemini.Config{
				BaseURL: os.Getenv("GEMINI_BASE_URL"),
				APIKey:  apiKey,
				Model:   os.Getenv("GEMINI_MODEL"),
			})
			if err != nil {
				log.Warn("router: gemini client not available", map[string]any{"error": err.Error()})
			} else {
				if extractor == nil {
					extractor = gemini.NewExtractor(client)
				}
				if checker == nil {
					checker = gemini.NewChecker(client)
				}
			}
		}
	}

	store := care.NewStore(repo, log)
	svc := care.NewService(store, extractor, checker, log)

	care.RegisterRoutes(r, svc)

	return r
}

// repoFromEnv resuelve el backend de persistencia para dev/handoff:
// DSN de Postgres si está, archivo sqlite si está, memoria si no hay nada.
func repoFromEnv(log logger.Logger) care.Repository {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err == nil {
			return pg.NewCareRepo(db)
		}
		log.Warn("router: postgres unavailable, falling back", map[string]any{"error": err.Error()})
	}

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		db, err := sq.Open(path)
		if err == nil {
			return sq.NewCareRepo(db)
		}
		log.Warn("router: sqlite unavailable, falling back", map[string]any{"error": err.Error()})
	}

	return mem.NewCareRepo()
}
