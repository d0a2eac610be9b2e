package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/vectorstore"
	"github.com/spf13/cobra"
)

var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Manage embedding vector stores",
	Long:  "Embed documents into a named vector store under embeddings_dir and search it by similarity.",
}

var vectorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Embed a file and add it to a vector store",
	RunE:  runVectorsAdd,
}

var vectorsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the stored documents most similar to a file",
	RunE:  runVectorsSearch,
}

var (
	vectorsStoreName string
	vectorsID        string
	vectorsTextFile  string
	vectorsTopK      int
)

func init() {
	vectorsCmd.PersistentFlags().StringVar(&vectorsStoreName, "store", "documents", "Vector store name under embeddings_dir")

	vectorsAddCmd.Flags().StringVar(&vectorsID, "id", "", "Document id (required)")
	vectorsAddCmd.Flags().StringVarP(&vectorsTextFile, "text-file", "t", "", "Path to the document to embed (required)")
	vectorsAddCmd.MarkFlagRequired("id")
	vectorsAddCmd.MarkFlagRequired("text-file")

	vectorsSearchCmd.Flags().StringVarP(&vectorsTextFile, "text-file", "t", "", "Path to the query document (required)")
	vectorsSearchCmd.Flags().IntVarP(&vectorsTopK, "top-k", "k", 5, "Number of results")
	vectorsSearchCmd.MarkFlagRequired("text-file")

	vectorsCmd.AddCommand(vectorsAddCmd)
	vectorsCmd.AddCommand(vectorsSearchCmd)
	rootCmd.AddCommand(vectorsCmd)
}

// openVectorStore embeds the input file and opens the named store.
func openVectorStore(ctx context.Context, a *app) (*vectorstore.Store, []float32, error) {
	if vectorsStoreName == "" || vectorsStoreName == "cache" || filepath.Base(vectorsStoreName) != vectorsStoreName {
		return nil, nil, fmt.Errorf("invalid store name %q", vectorsStoreName)
	}

	text, err := readInputText(vectorsTextFile)
	if err != nil {
		return nil, nil, err
	}

	emb, err := a.embedder(ctx)
	if err != nil {
		return nil, nil, err
	}
	vec, err := emb.Embed(ctx, embedding.TruncateRunes(text, embedding.MaxInputRunes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed %s: %w", vectorsTextFile, err)
	}

	st, err := vectorstore.Open(filepath.Join(a.cfg.EmbeddingsDir, vectorsStoreName), emb.Dimension(),
		vectorstore.WithIndex(a.cfg.UseVectorIndex))
	if err != nil {
		return nil, nil, err
	}
	return st, vec, nil
}

func runVectorsAdd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	st, vec, err := openVectorStore(ctx, a)
	if err != nil {
		return err
	}
	if err := st.Add(vectorsID, vec); err != nil {
		return fmt.Errorf("failed to add vector: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, map[string]any{"id": vectorsID, "store": vectorsStoreName, "size": st.Len()})
	}
	fmt.Fprintf(os.Stdout, "Added %s to %s (%d vectors)\n", vectorsID, vectorsStoreName, st.Len())
	return nil
}

func runVectorsSearch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	st, vec, err := openVectorStore(ctx, a)
	if err != nil {
		return err
	}
	results, err := st.Search(vec, vectorsTopK)
	if err != nil {
		return fmt.Errorf("failed to search vectors: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, results)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stdout, "No vectors in %s\n", vectorsStoreName)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%2d. %-40s %.4f\n", i+1, r.ID, r.Score)
	}
	return nil
}
