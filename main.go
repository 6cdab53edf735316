package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type App struct {
	DB     *sql.DB
	Config *Config
}

func main() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	InitializeLogger(config)

	if err := config.EnsureDirs(); err != nil {
		log.Fatal("Failed to create storage directories:", err)
	}

	app := &App{Config: config}

	app.DB, err = OpenDatabase(config.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer app.DB.Close()

	if err := app.initDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	r := app.Router()

	fmt.Printf("Server starting on :%s\n", config.Port)
	log.Fatal(http.ListenAndServe(":"+config.Port, r))
}

// Router builds the HTTP surface of the planner.
func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(app.RecoveryMiddleware)
	r.Use(app.LoggingMiddleware)

	r.HandleFunc("/api/users", app.handleCreateUser).Methods("POST")
	r.HandleFunc("/api/users", app.handleListUsers).Methods("GET")
	r.HandleFunc("/api/users/{id:[0-9]+}/rename", app.handleRenameUser).Methods("POST")
	r.HandleFunc("/api/users/{id:[0-9]+}/delete", app.handleDeleteUser).Methods("POST")
	r.HandleFunc("/api/users/{id:[0-9]+}/projects", app.handleCreateProject).Methods("POST")
	r.HandleFunc("/api/users/{id:[0-9]+}/projects", app.handleListProjects).Methods("GET")

	r.HandleFunc("/api/projects/{id:[0-9]+}", app.handleGetProject).Methods("GET")
	r.HandleFunc("/api/projects/{id:[0-9]+}/rename", app.handleRenameProject).Methods("POST")
	r.HandleFunc("/api/projects/{id:[0-9]+}/delete", app.handleDeleteProject).Methods("POST")
	r.HandleFunc("/api/projects/{id:[0-9]+}/frames", app.handleAddFrame).Methods("POST")
	r.HandleFunc("/api/projects/{id:[0-9]+}/frames/{frame_id:[0-9]+}/rename", app.handleRenameFrame).Methods("POST")
	r.HandleFunc("/api/projects/{id:[0-9]+}/frames/{frame_id:[0-9]+}", app.handleEditFrame).Methods("POST")

	r.HandleFunc("/api/frames/{id:[0-9]+}/delete", app.handleDeleteFrame).Methods("POST")
	r.HandleFunc("/api/frames/order", app.handleReorderFrames).Methods("POST")

	r.HandleFunc("/projects/{id:[0-9]+}/export", app.handleExportProject).Methods("GET")
	r.PathPrefix("/uploads/").HandlerFunc(app.handleUploadedFile).Methods("GET")

	return r
}
