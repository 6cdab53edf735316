package main

import (
	"encoding/json"
	"log"
	"net/http"

	"photoshootPlanner/internal/models"
	"photoshootPlanner/internal/utils"
)

type ProjectView struct {
	models.Project
	Frames []models.Frame `json:"frames"`
}

func (app *App) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid user id")
		return
	}

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.ValidationError(w, "name is required")
		return
	}

	project, err := app.CreateProject(userID, req.Name)
	if err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "User")
			return
		}
		log.Printf("Failed to create project: %v", err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, project)
}

func (app *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid user id")
		return
	}

	if _, err := app.GetUser(userID); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "User")
			return
		}
		log.Printf("Failed to load user %d: %v", userID, err)
		utils.DatabaseError(w)
		return
	}

	projects, err := app.ListProjects(userID)
	if err != nil {
		log.Printf("Failed to list projects for user %d: %v", userID, err)
		utils.DatabaseError(w)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// handleGetProject returns the project together with its frames in
// position order.
func (app *App) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid project id")
		return
	}

	project, err := app.GetProject(id)
	if err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Project")
			return
		}
		log.Printf("Failed to load project %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	frames, err := app.ListFrames(id)
	if err != nil {
		log.Printf("Failed to list frames for project %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ProjectView{Project: *project, Frames: frames})
}

func (app *App) handleRenameProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid project id")
		return
	}

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.ValidationError(w, "name is required")
		return
	}

	if err := app.RenameProject(id, req.Name); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Project")
			return
		}
		log.Printf("Failed to rename project %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "Project renamed")
}

func (app *App) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid project id")
		return
	}

	if err := app.DeleteProject(id); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Project")
			return
		}
		log.Printf("Failed to delete project %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "Project deleted")
}
