package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/ports/driving"
	"github.com/custodia-labs/docket/internal/logger"
)

// defaultSettle is how long a new file must stay unchanged before upload.
const defaultSettle = 500 * time.Millisecond

var documentWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload files dropped into a folder",
	Long: `Watches a folder and uploads every file created in it once writing has
finished. Hidden files and sub-folders are ignored. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentWatch,
}

var watchSettle time.Duration

func init() {
	documentWatchCmd.Flags().DurationVar(&watchSettle, "settle", defaultSettle, "Quiet period before a new file is uploaded")
	documentCmd.AddCommand(documentWatchCmd)
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	w, err := newFolderWatcher(args[0], documentService, cmd.OutOrStdout(), watchSettle)
	if err != nil {
		return err
	}
	defer w.Close()

	cmd.Printf("Watching %s for new files...\n", args[0])
	return w.Run(cmd.Context())
}

// folderWatcher uploads files created in a directory.
type folderWatcher struct {
	dir     string
	docs    driving.DocumentService
	out     io.Writer
	settle  time.Duration
	watcher *fsnotify.Watcher

	// pending maps paths to the time of their last event.
	pending map[string]time.Time
}

func newFolderWatcher(dir string, docs driving.DocumentService, out io.Writer, settle time.Duration) (*folderWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	if settle <= 0 {
		settle = defaultSettle
	}
	return &folderWatcher{
		dir:     dir,
		docs:    docs,
		out:     out,
		settle:  settle,
		watcher: watcher,
		pending: make(map[string]time.Time),
	}, nil
}

// Close stops watching.
func (w *folderWatcher) Close() error {
	return w.watcher.Close()
}

// Run processes events until ctx ends.
func (w *folderWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// handleEvent tracks created files and pushes back their deadline while
// they are still being written.
func (w *folderWatcher) handleEvent(event fsnotify.Event, now time.Time) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	switch {
	case event.Has(fsnotify.Create):
		w.pending[event.Name] = now
	case event.Has(fsnotify.Write):
		if _, ok := w.pending[event.Name]; ok {
			w.pending[event.Name] = now
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	}
}

// flush uploads every pending file that has been quiet for the settle period.
func (w *folderWatcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
		}
	}
	if len(ready) == 0 {
		return
	}
	sort.Strings(ready)

	files := make([]driven.FileHandle, 0, len(ready))
	for _, path := range ready {
		delete(w.pending, path)
		f, err := openPath(path)
		if err != nil {
			// Directories and files removed before settling are skipped.
			logger.Debug("skipping %s: %v", path, err)
			continue
		}
		files = append(files, f)
	}

	for _, res := range w.docs.Upload(ctx, files) {
		if res.Err != nil {
			fmt.Fprintf(w.out, "  %s: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(w.out, "  %s  %s\n", res.Document.ID, res.Document.DisplayName())
	}
}
