package archdef

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/gatefold/internal/ctxlog"
)

// Load parses architecture definitions from the given path, which may be a
// single .hcl file or a directory containing .hcl files.
func Load(ctx context.Context, path string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered architecture manifests", "count", len(files))

	var defs []*Definition
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading manifest %s: %w", file, err)
		}
		fileDefs, err := Decode(ctx, file, src)
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}
	return defs, nil
}

// Decode parses architecture definitions from manifest source. The
// filename is used for diagnostics only.
func Decode(ctx context.Context, filename string, src []byte) ([]*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	seen := make(map[string]bool)
	for _, def := range root.Architectures {
		if seen[def.Name] {
			return nil, fmt.Errorf("manifest %s: architecture %q defined twice", filename, def.Name)
		}
		seen[def.Name] = true
	}
	ctxlog.FromContext(ctx).Debug("decoded architecture manifest",
		"file", filename, "architectures", len(root.Architectures))
	return root.Architectures, nil
}

// findHCLFiles resolves a path to the list of .hcl files it denotes.
func findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting manifest path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest directory %s: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hcl") {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	return files, nil
}
