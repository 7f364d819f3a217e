package main

// @title Tawdifak Listings API
// @version 1.0
// @description Paginated, filterable, session-cached listings for the Tawdifak job board.
// @BasePath /api
func main() {
	cfg := LoadConfiguration()

	app := NewApp(cfg)
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
