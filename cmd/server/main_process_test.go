package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// TestMainProcess_BootFailures re-executes the test binary as the server and
// expects each misconfigured boot to exit non-zero.
func TestMainProcess_BootFailures(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") == "1" {
		main()
		return
	}

	redisSrv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available in this environment: %v", err)
	}
	defer redisSrv.Close()

	unreachableDB := []string{
		"DATABASE_URL=",
		"DB_HOST=127.0.0.1",
		"DB_PORT=1",
		"DB_NAME=legalease",
		"DB_SSLMODE=disable",
	}

	tests := []struct {
		name string
		env  []string
	}{
		{name: "redis refused", env: []string{"REDIS_URL=redis://127.0.0.1:0"}},
		{name: "redis url malformed", env: []string{"REDIS_URL=not-a-redis-url"}},
		{
			name: "database unreachable",
			env:  append([]string{"REDIS_URL=redis://" + redisSrv.Addr()}, unreachableDB...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestMainProcess_BootFailures$")
			cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "SERVER_ENV=development", "PORT=0")
			cmd.Env = append(cmd.Env, tt.env...)
			if err := cmd.Run(); err == nil {
				t.Fatalf("expected helper process to exit with error")
			}
		})
	}
}
