package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `Upload, list, save or remove documents. Only images and application files are accepted.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Upload one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentSaveCmd = &cobra.Command{
	Use:   "save [doc-id] [path]",
	Short: "Write a document's content to disk",
	Long:  `Writes the stored bytes to path, or to the original file name in the current directory.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDocumentSave,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

func init() {
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentSaveCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	files := make([]driven.FileHandle, 0, len(args))
	failed := 0
	for _, path := range args {
		f, err := openPath(path)
		if err != nil {
			cmd.Printf("  %s: %v\n", path, err)
			failed++
			continue
		}
		files = append(files, f)
	}

	for _, res := range documentService.Upload(cmd.Context(), files) {
		if res.Err != nil {
			cmd.Printf("  %s: %v\n", res.Name, res.Err)
			failed++
			continue
		}
		cmd.Printf("  %s  %s\n", res.Document.ID, res.Document.DisplayName())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files were not uploaded", failed, len(args))
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].DisplayName())
		cmd.Printf("    Size: %d KB\n", docs[i].SizeKB())
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	kind := "file"
	if doc.IsImage() {
		kind = "image"
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.Name)
	cmd.Printf("  Type:      %s (%s)\n", doc.Type, kind)
	cmd.Printf("  Extension: %s\n", doc.Extension())
	cmd.Printf("  Size:      %d KB (%d bytes)\n", doc.SizeKB(), doc.Size)
	cmd.Printf("  Uploaded:  %s\n", doc.UploadDate)
	return nil
}

func runDocumentSave(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()
	doc, err := documentService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	data, _, err := documentService.Content(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	path := filepath.Base(doc.Name)
	if len(args) == 2 {
		path = args[1]
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmd.Printf("Saved %s to %s\n", doc.Name, path)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()
	if _, err := documentService.Get(ctx, args[0]); errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Document %s not found, nothing removed.\n", args[0])
		return nil
	}
	if err := documentService.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}
