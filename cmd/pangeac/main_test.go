package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunHelloWorldSucceeds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stdlib/io.pang", `foreign fn print(msg: cptr u8);
`)
	mainFile := writeFile(t, dir, "main.pang", `fn main() -> i32 { print("hi"); return 0; }
`)
	out := filepath.Join(dir, "a.exe")
	code := run([]string{"-o", out, mainFile})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestRunHelloWorldWithDefaultStdlibSucceeds(t *testing.T) {
	dir := t.TempDir()
	mainFile := writeFile(t, dir, "main.pang", `fn main() -> i32 { print("hi"); return 0; }
`)
	out := filepath.Join(dir, "a.exe")
	code := run([]string{"-o", out, mainFile})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestRunUndefinedIdentifierFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stdlib/io.pang", `foreign fn print(msg: cptr u8);
`)
	mainFile := writeFile(t, dir, "main.pang", `fn main() -> i32 { return x; }
`)
	code := run([]string{"-o", filepath.Join(dir, "a.exe"), mainFile})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRunTokensFlagExitsZero(t *testing.T) {
	dir := t.TempDir()
	mainFile := writeFile(t, dir, "main.pang", `fn main() -> i32 { return 0; }
`)
	code := run([]string{"--tokens", mainFile})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
}

func TestRunMissingInputFails(t *testing.T) {
	code := run([]string{})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRunInvalidColorFails(t *testing.T) {
	dir := t.TempDir()
	mainFile := writeFile(t, dir, "main.pang", `fn main() -> i32 { return 0; }
`)
	code := run([]string{"--color=plaid", mainFile})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}
