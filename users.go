package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"photoshootPlanner/internal/utils"
)

// pathID extracts an integer route variable.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return id, true
}

type CreateUserRequest struct {
	Username string `json:"username"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

func (app *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		utils.ValidationError(w, "username is required")
		return
	}

	user, err := app.CreateUser(req.Username)
	if err != nil {
		log.Printf("Failed to create user: %v", err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func (app *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.ListUsers()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		utils.DatabaseError(w)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

func (app *App) handleRenameUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid user id")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		utils.ValidationError(w, "username is required")
		return
	}

	if err := app.RenameUser(id, req.Username); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "User")
			return
		}
		log.Printf("Failed to rename user %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "User renamed")
}

func (app *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid user id")
		return
	}

	if err := app.DeleteUser(id); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "User")
			return
		}
		log.Printf("Failed to delete user %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "User deleted")
}
