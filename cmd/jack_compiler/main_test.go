package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeJack(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
}

func TestJackCompilerSingleClass(t *testing.T) {
	source, build := t.TempDir(), t.TempDir()
	writeJack(t, source, "Main.jack", `
		class Main {
			function void main() {
				do Output.printString("hi");
				return;
			}
		}
	`)

	status := Handler([]string{source, build}, nil)
	if status != 0 {
		t.Fatalf("unexpected exit status: expected 0 got %d", status)
	}

	out, err := os.ReadFile(filepath.Join(build, "Main.vm"))
	if err != nil {
		t.Fatalf("expected a compiled 'Main.vm' file: %v", err)
	}
	if !strings.Contains(string(out), "function Main.main 0") {
		t.Fatalf("expected 'function Main.main 0' in %q", out)
	}
}

func TestJackCompilerMultipleClasses(t *testing.T) {
	source, build := t.TempDir(), t.TempDir()
	writeJack(t, source, "Main.jack", `
		class Main {
			function void main() {
				var Point p;
				let p = Point.new(1, 2);
				return;
			}
		}
	`)
	writeJack(t, source, "Point.jack", `
		class Point {
			field int x, y;

			constructor Point new(int ax, int ay) {
				let x = ax;
				let y = ay;
				return this;
			}
		}
	`)

	status := Handler([]string{source, build}, nil)
	if status != 0 {
		t.Fatalf("unexpected exit status: expected 0 got %d", status)
	}

	if _, err := os.ReadFile(filepath.Join(build, "Main.vm")); err != nil {
		t.Fatalf("expected a compiled 'Main.vm' file: %v", err)
	}
	pointOut, err := os.ReadFile(filepath.Join(build, "Point.vm"))
	if err != nil {
		t.Fatalf("expected a compiled 'Point.vm' file: %v", err)
	}
	if !strings.Contains(string(pointOut), "function Point.new 0") {
		t.Fatalf("expected 'function Point.new 0' in %q", pointOut)
	}
}

func TestJackCompilerNoPartialOutputOnError(t *testing.T) {
	source, build := t.TempDir(), t.TempDir()
	writeJack(t, source, "Good.jack", `
		class Good {
			function void main() {
				return;
			}
		}
	`)
	writeJack(t, source, "Bad.jack", `
		class Bad {
			function void broken() {
				let undeclared = 1;
				return;
			}
		}
	`)

	status := Handler([]string{source, build}, nil)
	if status == 0 {
		t.Fatalf("expected a non-zero exit status for a class referencing an undeclared identifier")
	}
	for _, name := range []string{"Good.vm", "Bad.vm"} {
		if _, err := os.Stat(filepath.Join(build, name)); !os.IsNotExist(err) {
			t.Fatalf("expected no '%s' artifact to be left behind on error", name)
		}
	}
}

func TestJackCompilerNoSourceFiles(t *testing.T) {
	source, build := t.TempDir(), t.TempDir()
	status := Handler([]string{source, build}, nil)
	if status == 0 {
		t.Fatalf("expected a non-zero exit status when no '.jack' files are present")
	}
}
