package main

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"restaurant-reviews/configs"
	"restaurant-reviews/driver"
	"restaurant-reviews/middlewares"
	"restaurant-reviews/routes"
	"restaurant-reviews/web"
)

func main() {
	cfg := configs.Load()

	db, err := driver.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	router := mux.NewRouter()
	routes.Register(router, db)
	router.PathPrefix("/").Handler(web.Handler())

	handler := middlewares.RequestLogger(middlewares.CORS(router))

	log.Infof("Server started on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
