package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

// DocumentWatcher keeps a documents directory in sync with the knowledge
// base: files dropped into the directory are ingested, removed files have
// their chunks deleted.
type DocumentWatcher struct {
	admin AdminService
}

// NewDocumentWatcher creates a watcher that ingests through the given admin
// service.
func NewDocumentWatcher(admin AdminService) *DocumentWatcher {
	return &DocumentWatcher{admin: admin}
}

// Watch blocks until the context is cancelled, reacting to file events under
// dirPath. Re-ingestion deletes the source's old chunks first so an edited
// file never leaves stale chunks behind.
func (w *DocumentWatcher) Watch(ctx context.Context, dirPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create file watcher", err)
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isWatchedFile(event.Name) {
					continue
				}

				// Editors often write via create-temp-and-rename, which can
				// fire several events; Create and Write are handled the same.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Infof("watcher: file modified or created: %s, re-ingesting", event.Name)
					source := filepath.Base(event.Name)
					if err := w.admin.DeleteSource(ctx, source); err != nil {
						log.Warnf("watcher: could not delete old chunks for %s: %v", source, err)
					}
					if _, err := w.admin.UploadDocument(ctx, event.Name, models.DocTypeDocument); err != nil {
						log.Error("watcher: failed to ingest "+event.Name, err)
					}
				} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					source := filepath.Base(event.Name)
					log.Infof("watcher: file removed: %s, deleting its chunks", source)
					if err := w.admin.DeleteSource(ctx, source); err != nil {
						log.Error("watcher: failed to delete chunks for "+source, err)
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watcher error", err)

			case <-ctx.Done():
				log.Info("watcher: context cancelled, shutting down")
				return
			}
		}
	}()

	log.Infof("watching directory: %s", dirPath)
	if err := watcher.Add(dirPath); err != nil {
		log.Error("failed to add path to watcher", err)
		return
	}
	<-ctx.Done()
}

func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	default:
		return false
	}
}
