package main

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"photoshootPlanner/internal/export"
	"photoshootPlanner/internal/utils"
)

const exportFilename = "project_storyboard.pdf"

// handleExportProject renders the project's frames into a PDF and returns
// it as a downloadable attachment. The document is built fully in memory
// and written out atomically.
func (app *App) handleExportProject(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("Failed to load project %d for export: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	frames, err := app.ListFrames(id)
	if err != nil {
		log.Printf("Failed to list frames for export of project %d: %v", id, err)
		utils.DatabaseError(w)
		return
	}

	blocks := make([]export.Block, 0, len(frames))
	for _, f := range frames {
		block := export.Block{
			Description:   f.Description,
			CharacterName: f.CharacterName,
			ShootTime:     f.ShootTime,
			Location:      f.Location,
		}
		if f.ImagePath != "" {
			block.ImagePath = filepath.Join(app.Config.UploadDir, f.ImagePath)
		}
		blocks = append(blocks, block)
	}

	composer := &export.Composer{FontPath: app.Config.FontPath}
	document, err := composer.Compose(project.Name, blocks)
	if err != nil {
		log.Printf("Failed to compose PDF for project %d: %v", id, err)
		utils.InternalServerError(w, "Failed to build document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.Write(document)
}
