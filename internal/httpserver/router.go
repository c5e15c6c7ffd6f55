package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/santanu-atta03/Ovara/internal/config"
	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/security"
	"github.com/santanu-atta03/Ovara/internal/service"
	"github.com/santanu-atta03/Ovara/internal/store/postgres"
	"github.com/santanu-atta03/Ovara/internal/store/sqlite"
)

// repositories bundles the per-driver repository implementations.
type repositories struct {
	users         domain.UserRepository
	contacts      domain.ContactRepository
	conversations domain.ConversationRepository
	participants  domain.ParticipantRepository
	messages      domain.MessageRepository
}

func buildRepos(driver string, db *sql.DB) repositories {
	if driver == "postgres" {
		return repositories{
			users:         postgres.NewUserRepo(db),
			contacts:      postgres.NewContactRepo(db),
			conversations: postgres.NewConversationRepo(db),
			participants:  postgres.NewParticipantRepo(db),
			messages:      postgres.NewMessageRepo(db),
		}
	}
	return repositories{
		users:         sqlite.NewUserRepo(db),
		contacts:      sqlite.NewContactRepo(db),
		conversations: sqlite.NewConversationRepo(db),
		participants:  sqlite.NewParticipantRepo(db),
		messages:      sqlite.NewMessageRepo(db),
	}
}

// NewRouter constructs the main HTTP router and wires routes, services, and middleware.
func NewRouter(cfg *config.Config, db *sql.DB, tokenSvc *security.TokenService, passwordHasher *security.PasswordHasher) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	repos := buildRepos(cfg.DatabaseDriver, db)

	authSvc := service.NewAuthService(repos.users, tokenSvc, passwordHasher)
	userSvc := service.NewUserService(repos.users)
	contactSvc := service.NewContactService(repos.contacts, repos.users)
	convSvc := service.NewConversationService(repos.conversations, repos.participants, repos.users)
	msgSvc := service.NewMessageService(repos.conversations, repos.participants, repos.messages, repos.contacts, cfg.PageSize)
	summarySvc := service.NewSummaryService(repos.participants, repos.messages)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		respondData(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(authSvc))
			r.Post("/login", handleLogin(authSvc))
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, repos.users))

			r.Post("/auth/logout", handleLogout(authSvc))
			r.Get("/auth/me", handleMe())

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", handleGetProfile(userSvc))
				r.Patch("/me", handleUpdateProfile(userSvc))
				r.Post("/me/heartbeat", handleHeartbeat(userSvc))
				r.Get("/search", handleSearchUsers(userSvc))
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", handleListContacts(contactSvc))
				r.Post("/", handleAddContact(contactSvc))
				r.Patch("/{contactID}", handleRenameContact(contactSvc))
				r.Delete("/{contactID}", handleRemoveContact(contactSvc))
				r.Post("/{contactID}/block", handleToggleBlock(contactSvc))
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", handleListConversations(convSvc, summarySvc))
				r.Post("/", handleCreateConversation(convSvc, summarySvc))
				r.Get("/{conversationID}", handleGetConversation(convSvc, summarySvc))
				r.Patch("/{conversationID}", handleUpdateGroupInfo(convSvc))
				r.Delete("/{conversationID}", handleDeleteConversation(convSvc))
				r.Get("/{conversationID}/messages", handleListMessages(msgSvc))
				r.Post("/{conversationID}/messages", handleCreateMessage(msgSvc))
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/{messageID}/delivered", handleMarkDelivered(msgSvc))
				r.Post("/{messageID}/read", handleMarkRead(msgSvc))
				r.Post("/{messageID}/reactions", handleReact(msgSvc))
				r.Delete("/{messageID}", handleDeleteMessage(msgSvc))
			})

			r.Mount("/uploads", UploadRoutes(cfg))
		})
	})

	return r
}
