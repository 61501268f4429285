package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/collections"
	"catalogquote/config"
	"catalogquote/handlers"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()
	sessions := handlers.NewSessionStore()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.SeedDemo {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateOptionMeasurements(app); err != nil {
			log.Printf("Warning: option measurement migration failed: %v", err)
		}
		return se.Next()
	})

	// Serve static files from ./static
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Every engine request is bound to the browser's engine session
		se.Router.BindFunc(handlers.EngineSessionMiddleware())

		// ── Combination engine ───────────────────────────────────
		se.Router.GET("/engine/structures/{id}", handlers.HandleEngineStructure(app, sessions, cfg))
		se.Router.POST("/engine/filters", handlers.HandleEngineToggleFilter(app, sessions, cfg))
		se.Router.DELETE("/engine/filters/{columnId}", handlers.HandleEngineClearFilter(app, sessions, cfg))
		se.Router.POST("/engine/select/{combinationId}", handlers.HandleEngineSelect(app, sessions, cfg))
		se.Router.POST("/engine/check-all", handlers.HandleEngineCheckAll(app, sessions, cfg))
		se.Router.POST("/engine/clear-checks", handlers.HandleEngineClearChecks(app, sessions, cfg))
		se.Router.POST("/engine/check/{combinationId}", handlers.HandleEngineCheck(app, sessions, cfg))
		se.Router.POST("/engine/manual", handlers.HandleEngineManual(app, sessions, cfg))

		// ── Quotes ───────────────────────────────────────────────
		se.Router.POST("/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/quotes/{quoteId}", handlers.HandleQuoteView(app, cfg))
		se.Router.POST("/quotes/{quoteId}/lines/from-engine", handlers.HandleQuoteLinesFromEngine(app, sessions, cfg))
		se.Router.GET("/quotes/{quoteId}/export/excel", handlers.HandleQuoteExportExcel(app, cfg))
		se.Router.GET("/quotes/{quoteId}/export/pdf", handlers.HandleQuoteExportPDF(app, cfg))

		// ── Catalog maintenance ──────────────────────────────────
		se.Router.POST("/catalog/columns/{columnId}/options/import", handlers.HandleOptionImport(app))
		se.Router.POST("/catalog/columns/{columnId}/options/import/errors", handlers.HandleOptionImportErrorReport(app))
		se.Router.GET("/material-rules", handlers.HandleMaterialRuleList(app))
		se.Router.POST("/material-rules", handlers.HandleMaterialRuleSave(app))

		// Redirect home to the default structure
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/engine/structures/default")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
