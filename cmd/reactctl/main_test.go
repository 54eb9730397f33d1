package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reactcore/internal/blob"
	"reactcore/internal/config"
	"reactcore/internal/core"
	"reactcore/internal/infra/persistence/memory"
	"reactcore/pkg/nuclide"
	"reactcore/pkg/reaction"
	"reactcore/pkg/serial"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// useMemoryService routes online commands to one shared in-memory service.
func useMemoryService(t *testing.T) *core.Service {
	t.Helper()
	t.Setenv(ConfigEnv, "")
	t.Setenv("REACTIONS_LOG_LEVEL", "error")
	svc, err := core.NewService(memory.NewStore(), core.WithBlobStore(blob.NewMemory()))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	old := openService
	openService = func(context.Context, config.Config) (*core.Service, error) { return svc, nil }
	t.Cleanup(func() { openService = old })
	return svc
}

func writeRateFile(t *testing.T) string {
	t.Helper()
	in := reaction.NewInterner()
	u235 := nuclide.New(92, 235, 0)
	proto, err := in.Proto(u235, "(n,fission)", reaction.ProtoOptions{
		Nu:        2.4,
		Branching: map[nuclide.ZAID]float64{nuclide.New(36, 92, 0): 0.5, nuclide.New(56, 141, 0): 0.5},
	})
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	data, err := serial.MarshalList([]reaction.Rate{reaction.NewRate("fuel", proto, 8, 2)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rates.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestUsageErrors(t *testing.T) {
	useMemoryService(t)
	cases := [][]string{
		nil,
		{"bogus"},
		{"target", "1", "1"},
		{"load"},
		{"export", "a", "b", "c"},
		{"-unknown-flag"},
	}
	for _, args := range cases {
		code, _, stderr := runCLI(t, args...)
		if code != 2 {
			t.Fatalf("%v: expected exit 2, got %d (%s)", args, code, stderr)
		}
		if !strings.Contains(stderr, "usage") {
			t.Fatalf("%v: expected usage output, got %q", args, stderr)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	useMemoryService(t)
	code, _, stderr := runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.toml"), "categories")
	if code != 1 || !strings.Contains(stderr, "config") {
		t.Fatalf("expected config failure, got %d %q", code, stderr)
	}
	t.Setenv("REACTIONS_BRANCHING", "sometimes")
	if code, _, _ := runCLI(t, "categories"); code != 1 {
		t.Fatalf("expected invalid env override to fail, got %d", code)
	}
}

func TestCategoriesAndTarget(t *testing.T) {
	useMemoryService(t)
	code, out, stderr := runCLI(t, "categories")
	if code != 0 {
		t.Fatalf("categories failed: %s", stderr)
	}
	for _, want := range []string{"N2N", "NGamma", "NPtot", "neutron"} {
		if !strings.Contains(out, want) {
			t.Fatalf("categories output lacks %s:\n%s", want, out)
		}
	}
	code, out, stderr = runCLI(t, "target", "1", "1", "NGamma")
	if code != 0 || !strings.Contains(out, "(10020)") {
		t.Fatalf("target: %d %q %q", code, out, stderr)
	}
	if code, _, _ := runCLI(t, "target", "x", "1", "NGamma"); code != 1 {
		t.Fatalf("expected bad Z to fail")
	}
	if code, _, _ := runCLI(t, "target", "1", "1", "NoSuchThing"); code != 1 {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestExpandFile(t *testing.T) {
	useMemoryService(t)
	path := writeRateFile(t)
	code, out, stderr := runCLI(t, "expand", path)
	if code != 0 {
		t.Fatalf("expand failed: %s", stderr)
	}
	reg, err := reaction.NewRegistry(reaction.NewInterner(), nuclide.NewTable(true))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	rates, err := core.DecodeRates([]byte(out), reg)
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rates) != 2 || rates[0].Mean != 4 || rates[1].Mean != 4 {
		t.Fatalf("unexpected expansion %v", rates)
	}
	if code, _, _ := runCLI(t, "expand", filepath.Join(t.TempDir(), "none.json")); code != 1 {
		t.Fatalf("expected missing file to fail")
	}
}

func TestRateSetLifecycle(t *testing.T) {
	svc := useMemoryService(t)
	path := writeRateFile(t)

	steps := []struct {
		args []string
		code int
		want string
	}{
		{[]string{"save", "core-a", path}, 0, "saved core-a (1 rates)"},
		{[]string{"list"}, 0, "core-a"},
		{[]string{"load", "core-a"}, 0, `"ReactionRate"`},
		{[]string{"export", "core-a"}, 0, "rate-sets/core-a.json"},
		{[]string{"export", "core-a"}, 1, ""},
		{[]string{"import", "rate-sets/core-a.json", "core-b"}, 0, "as core-b (1 rates)"},
		{[]string{"delete", "core-a"}, 0, "deleted core-a"},
		{[]string{"load", "core-a"}, 3, ""},
		{[]string{"delete", "core-a"}, 3, ""},
		{[]string{"import", "missing.json"}, 3, ""},
	}
	for _, step := range steps {
		code, out, stderr := runCLI(t, step.args...)
		if code != step.code {
			t.Fatalf("%v: expected exit %d, got %d (%s)", step.args, step.code, code, stderr)
		}
		if step.want != "" && !strings.Contains(out, step.want) {
			t.Fatalf("%v: output %q lacks %q", step.args, out, step.want)
		}
	}
	sets, err := svc.ListRateSets(context.Background())
	if err != nil || len(sets) != 1 || sets[0].Name != "core-b" {
		t.Fatalf("unexpected final sets %v %v", sets, err)
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	useMemoryService(t)
	var codes []int
	old := exitFunc
	exitFunc = func(code int) { codes = append(codes, code) }
	defer func() { exitFunc = old }()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"reactctl", "categories"}
	main()
	os.Args = []string{"reactctl"}
	main()
	if len(codes) != 2 || codes[0] != 0 || codes[1] != 2 {
		t.Fatalf("unexpected exit codes %v", codes)
	}
}
