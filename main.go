package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"timecost/commands"
	"timecost/handlers"
)

func main() {
	app := pocketbase.New()

	app.RootCmd.AddCommand(commands.NewReportCommand())

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Tag every request with a run id for log correlation
		se.Router.BindFunc(handlers.RunIDMiddleware(app))

		// ── Calculator ───────────────────────────────────────────
		se.Router.GET("/", handlers.HandleCalculatorPage())
		se.Router.POST("/calculate", handlers.HandleCalculate(app))

		// ── Exports (re-post the same upload) ────────────────────
		se.Router.POST("/export/excel", handlers.HandleExportExcel(app))
		se.Router.POST("/export/pdf", handlers.HandleExportPDF(app))

		// ── Reference ────────────────────────────────────────────
		se.Router.GET("/rates", handlers.HandleRates())

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
