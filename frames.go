package main

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"photoshootPlanner/internal/media"
	"photoshootPlanner/internal/utils"
)

// handleAddFrame creates a frame from a multipart form. The image is taken
// from the image_data field (inline-drawn sketch as a data URL) or the
// image file field (upload). Any decode failure degrades to a frame with no
// image attached; it never fails the request.
func (app *App) handleAddFrame(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid project id")
		return
	}

	if err := r.ParseMultipartForm(app.Config.MaxUploadBytes); err != nil {
		log.Printf("Failed to parse add frame form: %v", err)
		utils.BadRequestError(w, "Invalid form data")
		return
	}

	imageName, thumbName := app.ingestFrameImage(r)

	frame, err := app.CreateFrame(projectID,
		r.FormValue("description"),
		r.FormValue("character_name"),
		r.FormValue("shoot_time"),
		r.FormValue("location"),
		imageName, thumbName)
	if err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Project")
			return
		}
		log.Printf("Failed to create frame: %v", err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, frame)
}

// ingestFrameImage runs the media pipeline for an add-frame request:
// decode, normalize, derive the thumbnail, allocate names and write both
// files. It returns the stored relative filenames; either may come back
// empty on failure (no image, or image without thumbnail) since ingestion
// failures must not abort record creation.
func (app *App) ingestFrameImage(r *http.Request) (string, string) {
	decoded := app.decodeFrameImage(r)
	if decoded == nil {
		return "", ""
	}

	normalized := media.Normalize(decoded)
	thumb := media.Thumbnail(normalized)
	names := media.AllocateNames(decoded.Source, decoded.Filename, time.Now())

	if err := media.SaveImage(normalized, app.Config.UploadDir, names.Image); err != nil {
		storeErr := WrapStoreError(ErrTypeStorageIO, "failed to store image", err)
		AppLogger.WithError(storeErr).WithField("filename", names.Image).
			Error("Failed to store image, frame will be created without one")
		return "", ""
	}

	if err := media.SaveImage(thumb, app.Config.ThumbnailDir, names.Thumbnail); err != nil {
		storeErr := WrapStoreError(ErrTypeStorageIO, "failed to store thumbnail", err)
		AppLogger.WithError(storeErr).WithField("filename", names.Thumbnail).
			Error("Failed to store thumbnail, keeping the original only")
		return names.Image, ""
	}

	return names.Image, names.Thumbnail
}

// decodeFrameImage picks the image source from the request and decodes it.
// A nil return means no image was attached, including the graceful-degrade
// case of undecodable input.
func (app *App) decodeFrameImage(r *http.Request) *media.Decoded {
	if data := r.FormValue("image_data"); data != "" {
		decoded, err := media.DecodeSketch(data)
		if err != nil {
			AppLogger.WithError(err).Warn("Sketch decode failed, continuing without image")
			return nil
		}
		return decoded
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// No image field in the form.
		return nil
	}
	defer file.Close()

	decoded, err := media.DecodeUpload(header.Filename, file)
	if err != nil {
		AppLogger.WithError(err).WithField("filename", header.Filename).
			Warn("Upload decode failed, continuing without image")
		return nil
	}
	return decoded
}

type RenameFrameRequest struct {
	Description string `json:"description"`
}

func (app *App) handleRenameFrame(w http.ResponseWriter, r *http.Request) {
	frameID, ok := pathID(r, "frame_id")
	if !ok {
		utils.BadRequestError(w, "Invalid frame id")
		return
	}

	var req RenameFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if req.Description == "" {
		utils.ValidationError(w, "description is required")
		return
	}

	if err := app.RenameFrame(frameID, req.Description); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Frame")
			return
		}
		log.Printf("Failed to rename frame %d: %v", frameID, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "Frame renamed")
}

func (app *App) handleEditFrame(w http.ResponseWriter, r *http.Request) {
	frameID, ok := pathID(r, "frame_id")
	if !ok {
		utils.BadRequestError(w, "Invalid frame id")
		return
	}

	var update FrameUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}

	if err := app.UpdateFrameInfo(frameID, update); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Frame")
			return
		}
		log.Printf("Failed to update frame %d: %v", frameID, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "Frame updated")
}

func (app *App) handleDeleteFrame(w http.ResponseWriter, r *http.Request) {
	frameID, ok := pathID(r, "id")
	if !ok {
		utils.BadRequestError(w, "Invalid frame id")
		return
	}

	if err := app.DeleteFrame(frameID); err != nil {
		if IsNotFound(err) {
			utils.NotFoundError(w, "Frame")
			return
		}
		log.Printf("Failed to delete frame %d: %v", frameID, err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithSuccess(w, nil, "Frame deleted")
}

type ReorderRequest struct {
	Order []int `json:"order"`
}

// handleReorderFrames rewrites the positions of the listed frames to their
// index in the payload. Frames not listed keep their positions.
func (app *App) handleReorderFrames(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return
	}
	if len(req.Order) == 0 {
		utils.BadRequestError(w, "Invalid data")
		return
	}

	if err := app.ReorderFrames(req.Order); err != nil {
		log.Printf("Failed to reorder frames: %v", err)
		utils.DatabaseError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// handleUploadedFile serves stored originals and thumbnails from the
// storage root. The path is confined to the uploads directory.
func (app *App) handleUploadedFile(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/uploads/"))
	if filename == "." || strings.HasPrefix(filename, "..") || filepath.IsAbs(filename) {
		utils.NotFoundError(w, "File")
		return
	}

	http.ServeFile(w, r, filepath.Join(app.Config.UploadDir, filename))
}
