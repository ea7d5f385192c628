package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "timelevel/internal/"

type sourceImport struct {
	file string
	path string
}

// collectImports parses every non-test Go file under root and returns its
// imports.
func collectImports(t *testing.T, root string) []sourceImport {
	t.Helper()
	fset := token.NewFileSet()
	var out []sourceImport
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			out = append(out, sourceImport{file: filepath.ToSlash(path), path: strings.Trim(imp.Path.Value, `"`)})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "modules")) {
		module := moduleName(imp.file)
		layer := detectLayer(imp.file)
		if module == "" || layer == "" || !strings.Contains(imp.path, modulePrefix+"modules/") {
			continue
		}
		if violatesLayerRule(module, layer, imp.path) {
			t.Errorf("forbidden import in %s (%s): %s", imp.file, layer, imp.path)
		}
	}
}

// Domain packages hold the pure tracking and leveling rules; they may only
// reach the standard library and platform helpers.
func TestDomainImportsStayPure(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "modules")) {
		if detectLayer(imp.file) != "domain" {
			continue
		}
		if isStdlib(imp.path) || strings.HasPrefix(imp.path, modulePrefix+"platform/") {
			continue
		}
		if strings.Contains(imp.path, "/internal/modules/"+moduleName(imp.file)+"/domain") {
			continue
		}
		t.Errorf("domain file %s imports %s", imp.file, imp.path)
	}
}

func TestPlatformDoesNotImportProjectLayers(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "platform")) {
		if strings.HasPrefix(imp.path, modulePrefix) && !strings.HasPrefix(imp.path, modulePrefix+"platform/") {
			t.Errorf("platform file %s imports %s", imp.file, imp.path)
		}
	}
}

// The TUI talks to modules through handler values wired in bootstrap and only
// names their DTOs.
func TestUIOnlySeesModuleDTOs(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "ui")) {
		if !strings.HasPrefix(imp.path, modulePrefix+"modules/") {
			continue
		}
		if !isDTO(imp.path) {
			t.Errorf("ui file %s imports %s", imp.file, imp.path)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".") && first != "timelevel"
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain", "port/in", "port/out", "dto":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service")
	default:
		return false
	}
}
