package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/syeo66/ochsenbein.red-2023/internal/config"
)

const debounceDuration = 500 * time.Millisecond

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server to serve your output directory. It also watches your content, layouts,
and static directories for changes and automatically rebuilds the site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(appConfig, logger)
	},
}

func runServe(cfg config.Config, log *logrus.Logger) error {
	log.Info("Performing initial build...")
	if err := runBuildProcess(cfg, log); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		log.Info("Rebuilding site due to changes...")
		if err := runBuildProcess(cfg, log); err != nil {
			log.WithError(err).Error("Rebuild failed")
			return
		}
		log.Info("Site rebuilt successfully")
	}
	go watch(watcher, log, rebuild)

	for _, root := range []string{cfg.ContentDir, cfg.LayoutsDir, cfg.StaticDir} {
		addRecursive(watcher, log, root)
	}

	addr := fmt.Sprintf(":%d", serverPort)
	log.WithField("dir", cfg.OutputDir).Infof("Serving site on http://localhost%s", addr)
	return http.ListenAndServe(addr, devHandler(cfg.OutputDir))
}

// watch debounces relevant watcher events into calls to rebuild.
func watch(watcher *fsnotify.Watcher, log logrus.FieldLogger, rebuild func()) {
	var buildTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("Change detected")

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				addRecursive(watcher, log, event.Name)
			}
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("Watcher error")
		}
	}
}

// addRecursive watches root and all directories below it.
func addRecursive(watcher *fsnotify.Watcher, log logrus.FieldLogger, root string) {
	if root == "" {
		return
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.WithField("dir", root).Debug("Directory not found, not watching")
		return
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("dir", path).Warn("Error walking directory")
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				log.WithError(err).WithField("dir", path).Warn("Failed to watch directory")
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("dir", root).Warn("Error setting up watch")
	}
}

// devHandler serves outputDir without directory listings or caching.
func devHandler(outputDir string) http.Handler {
	fs := http.FileServer(http.Dir(outputDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(r.URL.Path), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fs.ServeHTTP(w, r)
	})
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
