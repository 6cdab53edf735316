package main

import (
	"testing"
	"time"

	"photoshootPlanner/internal/models"
)

func TestCreateFrameDefaults(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	frame := seedFrame(t, app, project.ID, "", "", "")

	if frame.Description != models.DefaultDescription {
		t.Errorf("description = %q, want default placeholder", frame.Description)
	}
	if frame.Position != 0 {
		t.Errorf("position = %d, want 0", frame.Position)
	}
	if frame.HasImage() {
		t.Error("frame without image reports HasImage")
	}
}

func TestCreateFrameMissingProject(t *testing.T) {
	app := newTestApp(t)

	_, err := app.CreateFrame(42, "desc", "", "", "", "", "")
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteFrameRemovesFilesAndRecord(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	imgPath := writeStoredFile(t, app.Config.UploadDir, "shot_20240101_101010_abc.png")
	thumbPath := writeStoredFile(t, app.Config.ThumbnailDir, "thumb_shot_20240101_101010_abc.png")
	frame := seedFrame(t, app, project.ID, "d", "shot_20240101_101010_abc.png", "thumb_shot_20240101_101010_abc.png")

	if err := app.DeleteFrame(frame.ID); err != nil {
		t.Fatalf("DeleteFrame failed: %v", err)
	}

	if fileExists(imgPath) {
		t.Error("original file still exists after delete")
	}
	if fileExists(thumbPath) {
		t.Error("thumbnail file still exists after delete")
	}
	if _, err := app.GetFrame(frame.ID); !IsNotFound(err) {
		t.Errorf("frame record still readable after delete: %v", err)
	}
}

func TestDeleteFrameSurvivesMissingFiles(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	// Paths are recorded but the files were never written (or already
	// leaked); the record must still go away.
	frame := seedFrame(t, app, project.ID, "d", "never_written.png", "thumb_never_written.png")

	if err := app.DeleteFrame(frame.ID); err != nil {
		t.Fatalf("DeleteFrame failed with missing files: %v", err)
	}
	if _, err := app.GetFrame(frame.ID); !IsNotFound(err) {
		t.Error("frame record survived delete")
	}
}

func TestDeleteFrameConventionalThumbnail(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	// Historical rows have no thumbnail_path and keep the thumbnail flat in
	// uploads/ under the thumb_ prefix.
	now := time.Now()
	res, err := app.DB.Exec(`
		INSERT INTO frame (project_id, description, image_path, position, created_at, updated_at)
		VALUES (?, 'old row', 'legacy.png', 0, ?, ?)
	`, project.ID, now, now)
	if err != nil {
		t.Fatalf("failed to insert legacy frame: %v", err)
	}
	id64, _ := res.LastInsertId()
	frameID := int(id64)

	imgPath := writeStoredFile(t, app.Config.UploadDir, "legacy.png")
	thumbPath := writeStoredFile(t, app.Config.UploadDir, "thumb_legacy.png")

	frame, err := app.GetFrame(frameID)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if ref := frame.Thumbnail(); ref.Source != models.ThumbnailConventional || ref.Filename != "thumb_legacy.png" {
		t.Errorf("thumbnail ref = %+v, want conventional thumb_legacy.png", ref)
	}

	if err := app.DeleteFrame(frameID); err != nil {
		t.Fatalf("DeleteFrame failed: %v", err)
	}
	if fileExists(imgPath) || fileExists(thumbPath) {
		t.Error("legacy files survived delete")
	}
}

func TestUpdateFrameInfoPartial(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)
	frame := seedFrame(t, app, project.ID, "original", "", "")

	loc := "studio B"
	if err := app.UpdateFrameInfo(frame.ID, FrameUpdate{Location: &loc}); err != nil {
		t.Fatalf("UpdateFrameInfo failed: %v", err)
	}

	got, err := app.GetFrame(frame.ID)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if got.Location != "studio B" {
		t.Errorf("location = %q, want studio B", got.Location)
	}
	if got.Description != "original" {
		t.Errorf("description changed on partial update: %q", got.Description)
	}
}

func TestListFramesOrdering(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	// Insert in shuffled position order; the listing must come back sorted
	// by position regardless of insertion order.
	f1 := seedFrame(t, app, project.ID, "pos2", "", "")
	f2 := seedFrame(t, app, project.ID, "pos0", "", "")
	f3 := seedFrame(t, app, project.ID, "pos1", "", "")
	for id, pos := range map[int]int{f1.ID: 2, f2.ID: 0, f3.ID: 1} {
		if _, err := app.DB.Exec(`UPDATE frame SET position = ? WHERE id = ?`, pos, id); err != nil {
			t.Fatalf("failed to set position: %v", err)
		}
	}

	frames, err := app.ListFrames(project.ID)
	if err != nil {
		t.Fatalf("ListFrames failed: %v", err)
	}

	var got []string
	for _, f := range frames {
		got = append(got, f.Description)
	}
	want := []string{"pos0", "pos1", "pos2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame order = %v, want %v", got, want)
		}
	}
}

func TestReorderFrames(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)
	other := seedProject(t, app)

	f1 := seedFrame(t, app, project.ID, "a", "", "")
	f2 := seedFrame(t, app, project.ID, "b", "", "")
	f3 := seedFrame(t, app, project.ID, "c", "", "")
	untouched := seedFrame(t, app, other.ID, "other", "", "")
	if _, err := app.DB.Exec(`UPDATE frame SET position = 7 WHERE id = ?`, untouched.ID); err != nil {
		t.Fatalf("failed to set position: %v", err)
	}

	if err := app.ReorderFrames([]int{f3.ID, f1.ID, f2.ID}); err != nil {
		t.Fatalf("ReorderFrames failed: %v", err)
	}

	wantPositions := map[int]int{f3.ID: 0, f1.ID: 1, f2.ID: 2, untouched.ID: 7}
	for id, want := range wantPositions {
		frame, err := app.GetFrame(id)
		if err != nil {
			t.Fatalf("GetFrame(%d) failed: %v", id, err)
		}
		if frame.Position != want {
			t.Errorf("frame %d position = %d, want %d", id, frame.Position, want)
		}
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	app := newTestApp(t)
	project := seedProject(t, app)

	img1 := writeStoredFile(t, app.Config.UploadDir, "one.png")
	img2 := writeStoredFile(t, app.Config.UploadDir, "two.png")
	f1 := seedFrame(t, app, project.ID, "one", "one.png", "")
	f2 := seedFrame(t, app, project.ID, "two", "two.png", "")

	if err := app.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := app.GetProject(project.ID); !IsNotFound(err) {
		t.Error("project record survived delete")
	}
	for _, id := range []int{f1.ID, f2.ID} {
		if _, err := app.GetFrame(id); !IsNotFound(err) {
			t.Errorf("frame %d survived project delete", id)
		}
	}
	if fileExists(img1) || fileExists(img2) {
		t.Error("stored files survived project delete")
	}
}

func TestDeleteUserCascades(t *testing.T) {
	app := newTestApp(t)

	user, err := app.CreateUser("cascade")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	var frameIDs []int
	var projectIDs []int
	for _, name := range []string{"P1", "P2"} {
		project, err := app.CreateProject(user.ID, name)
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		projectIDs = append(projectIDs, project.ID)
		frame := seedFrame(t, app, project.ID, name+" frame", "", "")
		frameIDs = append(frameIDs, frame.ID)
	}

	if err := app.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := app.GetUser(user.ID); !IsNotFound(err) {
		t.Error("user record survived delete")
	}
	for _, id := range projectIDs {
		if _, err := app.GetProject(id); !IsNotFound(err) {
			t.Errorf("project %d survived user delete", id)
		}
	}
	for _, id := range frameIDs {
		if _, err := app.GetFrame(id); !IsNotFound(err) {
			t.Errorf("frame %d survived user delete", id)
		}
	}
}
